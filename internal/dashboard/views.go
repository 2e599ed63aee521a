package dashboard

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// View names registered with the engine.
const (
	LayoutView = "layout"
	IndexView  = "index"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewEngine returns a loaded template engine over the embedded views.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("opening embedded views: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("parsing views: %w", err)
	}
	return engine, nil
}
