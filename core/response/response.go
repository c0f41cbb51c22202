package response

import (
	"encoding/json"
	"net/http"
)

// Response writes itself to w.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc adapts a function returning a Response to http.Handler.
type HandlerFunc func(r *http.Request) Response

// ServeHTTP renders the Response returned by h.
func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	Render(w, r, h(r))
}

// Render writes resp. A failing or nil response becomes a 500.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	if resp == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := resp(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with custom status code.
func StringWithStatus(content string, status int) Response {
	return write("text/plain; charset=utf-8", []byte(content), status)
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with custom status code.
func HTMLWithStatus(content string, status int) Response {
	return write("text/html; charset=utf-8", []byte(content), status)
}

// JSON creates an application/json response with 200 OK status.
func JSON(v any) Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
func JSONWithStatus(v any, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return write("application/json; charset=utf-8", data, status)(w, r)
	}
}

// NoContent creates a 204 No Content response.
func NoContent() Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// Redirect creates a 302 Found response.
func Redirect(url string) Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, for use after a POST.
func RedirectSeeOther(url string) Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom 3xx status.
func RedirectWithStatus(url string, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status < 300 || status > 399 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}

func write(contentType string, body []byte, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", contentType)
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(body) == 0 {
			return nil
		}
		_, err := w.Write(body)
		return err
	}
}
