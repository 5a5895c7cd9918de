package psoscreen

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/bodgit/psoscreen/capture"
	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"
)

const (
	// Some uploads arrive with only a few hundred bytes, the game
	// seems to give up part way through
	minUploadSize = 1000
	// A little over the largest GameCube capture
	maxUploadSize = 164391

	qrSize = 256
)

// Multipart field names used by the upload form
var uploadFields = map[string]capture.Platform{
	"gcfile": capture.GameCubeEp12,
	"dcfile": capture.Dreamcast,
}

var templates = template.Must(template.New("page").Parse(`<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{block "body" .}}{{end}}
</body>
</html>
`))

var indexTemplate = template.Must(template.Must(templates.Clone()).Parse(`{{define "body"}}
<form action="/submit" method="post" enctype="multipart/form-data">
<p>GameCube: <input type="file" name="gcfile"></p>
<p>Dreamcast: <input type="file" name="dcfile"></p>
<p><input type="submit" value="Upload"></p>
</form>
<a href="/gallery">Gallery</a>
{{end}}`))

var uploadedTemplate = template.Must(template.Must(templates.Clone()).Parse(`{{define "body"}}
<p>Your photo was successfully uploaded.</p>
<img src="/uploads/{{.Name}}.png">
<p>You can access it via this QR Code:</p>
<img src="/qr/{{.Name}}.png">
<br>
<a href="/">Upload another snapshot</a>
{{end}}`))

var galleryTemplate = template.Must(template.Must(templates.Clone()).Parse(`{{define "body"}}
{{range .Entries}}
<p><a href="/uploads/{{.Name}}.png"><img src="/uploads/{{.Name}}.png"></a><br>{{.Platform}}, {{.Created.Format "2006-01-02 15:04"}}</p>
{{else}}
<p>Nothing here yet.</p>
{{end}}
<a href="/">Upload</a>
{{end}}`))

var errorTemplate = template.Must(template.Must(templates.Clone()).Parse(`{{define "body"}}
<p>{{.Message}}</p>
<a href="/">Try again.</a>
{{end}}`))

type page struct {
	Title   string
	Message string
	Name    string
	Entries []Entry
}

type server struct {
	*PSOScreen
	baseURL string
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Printf("%s %s %s %d\n", r.RemoteAddr, r.Method, r.RequestURI, sw.status)
	})
}

func (s *server) render(w http.ResponseWriter, t *template.Template, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Execute(w, p); err != nil {
		s.logger.Printf("Template failed: %v\n", err)
	}
}

func (s *server) fail(w http.ResponseWriter, status int, message string) {
	s.render(w, errorTemplate, status, page{Title: "Sorry.", Message: message})
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, indexTemplate, http.StatusOK, page{Title: "PSO Screenshot Upload"})
}

// Work out the platform from the filename sent with the part, otherwise
// use whichever form field it arrived in.
func partPlatform(part interface{ FileName() string }, field string) capture.Platform {
	if p, err := capture.PlatformFromFilename(part.FileName()); err == nil {
		return p
	}
	return uploadFields[field]
}

// A chunked upload has no Content-Length so an oversized body is only
// caught once the limit is hit while reading it.
func (s *server) readFailed(w http.ResponseWriter, err error) {
	s.logger.Printf("Reading upload failed: %v\n", err)
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		s.fail(w, http.StatusRequestEntityTooLarge, "That photo is too big.")
		return
	}
	s.fail(w, http.StatusBadRequest, "Something went wrong.")
}

func (s *server) submit(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.ContentLength >= 0 && r.ContentLength < minUploadSize:
		s.fail(w, http.StatusBadRequest, "Something went wrong, that photo file is too small.")
		return
	case r.ContentLength > maxUploadSize:
		s.fail(w, http.StatusRequestEntityTooLarge, "That photo is too big.")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	mr, err := r.MultipartReader()
	if err != nil {
		s.fail(w, http.StatusBadRequest, "Something went wrong.")
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.readFailed(w, err)
			return
		}

		if _, ok := uploadFields[part.FormName()]; !ok {
			continue
		}

		raw, err := io.ReadAll(part)
		if err != nil {
			s.readFailed(w, err)
			return
		}
		if len(raw) == 0 {
			continue
		}

		name, err := s.Upload(partPlatform(part, part.FormName()), raw)
		if err != nil {
			s.logger.Printf("Upload failed: %v\n", err)
			var se *capture.SizeError
			if errors.As(err, &se) {
				s.fail(w, http.StatusBadRequest, "That photo file is incomplete.")
				return
			}
			s.fail(w, http.StatusInternalServerError, "Something went wrong.")
			return
		}

		s.render(w, uploadedTemplate, http.StatusOK, page{Title: "Thank you!", Name: name})
		return
	}

	s.fail(w, http.StatusBadRequest, "No photo was uploaded.")
}

func (s *server) image(w http.ResponseWriter, r *http.Request) {
	b, err := s.gallery.Get(mux.Vars(r)["name"])
	switch err {
	case nil:
	case ErrNotFound:
		http.NotFound(w, r)
		return
	default:
		s.logger.Printf("Gallery lookup failed: %v\n", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(b)
}

func (s *server) imageURL(r *http.Request, name string) string {
	base := s.baseURL
	if base == "" {
		base = "http://" + r.Host
	}
	return fmt.Sprintf("%s/uploads/%s.png", strings.TrimSuffix(base, "/"), name)
}

func (s *server) qr(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if _, err := s.gallery.Get(name); err != nil {
		http.NotFound(w, r)
		return
	}

	b, err := qrcode.Encode(s.imageURL(r, name), qrcode.Highest, qrSize)
	if err != nil {
		s.logger.Printf("QR code failed: %v\n", err)
		http.Error(w, "Error generating QR Code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(b)
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	entries, err := s.gallery.List()
	if err != nil {
		s.logger.Printf("Gallery listing failed: %v\n", err)
		s.fail(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	s.render(w, galleryTemplate, http.StatusOK, page{Title: "Gallery", Entries: entries})
}

// Handler returns the HTTP handler for the upload gallery. baseURL is used
// to build the links encoded in QR codes; if empty the request's Host
// header is used instead.
func (p *PSOScreen) Handler(baseURL string) (http.Handler, error) {
	if p.gallery == nil {
		return nil, errNoGallery
	}

	s := &server{PSOScreen: p, baseURL: baseURL}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.Path("/").Methods("GET").HandlerFunc(s.index)
	// Requested from the front page of the game's browser
	r.Path("/redirector").Methods("GET").HandlerFunc(s.index)
	r.Path("/submit").Methods("POST").HandlerFunc(s.submit)
	r.Path("/uploads/{name:[A-Za-z0-9_-]+}.png").Methods("GET").HandlerFunc(s.image)
	r.Path("/qr/{name:[A-Za-z0-9_-]+}.png").Methods("GET").HandlerFunc(s.qr)
	r.Path("/gallery").Methods("GET").HandlerFunc(s.list)

	return r, nil
}
