// Package web renders the chat widget markup and serves its static assets.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"supportchat-backend/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// BlockData is the view model of the chat block.
type BlockData struct {
	Header      string
	Messages    template.HTML
	Ready       bool
	Placeholder string
	SendLabel   string
	YouLabel    string
	SubmitURL   string
}

// PageData wraps the block into a standalone page.
type PageData struct {
	Lang  string
	Title string
	Block BlockData
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Message renders one conversation entry. The message is trusted markup;
// callers escape any user-supplied parts.
func (r *Renderer) Message(msg models.ChatMessage) (string, error) {
	return r.execute("message", msg)
}

// Text renders a plain-text message, escaping it.
func (r *Renderer) Text(senderClass, senderName, text string) (string, error) {
	return r.Message(models.ChatMessage{
		SenderClass: senderClass,
		SenderName:  senderName,
		Message:     template.HTML(template.HTMLEscapeString(text)),
	})
}

func (r *Renderer) Block(data BlockData) (string, error) {
	return r.execute("block", data)
}

func (r *Renderer) Page(data PageData) (string, error) {
	return r.execute("page", data)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StaticHandler serves the embedded chat.js and chat.css.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
