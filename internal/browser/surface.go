package browser

import (
	"fmt"

	"github.com/go-rod/rod"
)

const createOverlayScript = `(id, unit, color) => {
	const old = document.getElementById(id);
	if (old) old.remove();
	const el = document.createElement("div");
	el.id = id;
	el.setAttribute("aria-hidden", "true");
	Object.assign(el.style, {
		position: "fixed",
		inset: "0",
		pointerEvents: "none",
		zIndex: "2147483647",
		backgroundImage:
			"repeating-linear-gradient(to right, " + color + " 0 1px, transparent 1px " + unit + "px)," +
			"repeating-linear-gradient(to bottom, " + color + " 0 1px, transparent 1px " + unit + "px)",
	});
	document.body.appendChild(el);
	return true;
}`

const destroyOverlayScript = `(id) => {
	const el = document.getElementById(id);
	if (el) el.remove();
	return true;
}`

// DefaultOverlayColor is a translucent red grid line.
const DefaultOverlayColor = "rgba(255, 0, 0, 0.15)"

// PageSurface paints the grid overlay onto a live page. It satisfies
// overlay.Surface. Destroy succeeds when the page already lost the element.
type PageSurface struct {
	page  *rod.Page
	unit  float64
	color string
}

// NewPageSurface creates a surface drawing unit-spaced lines on page.
func NewPageSurface(page *rod.Page, unit float64) *PageSurface {
	return &PageSurface{page: page, unit: unit, color: DefaultOverlayColor}
}

// Create injects the overlay element, replacing any previous one.
func (s *PageSurface) Create() error {
	if _, err := s.page.Eval(createOverlayScript, OverlayID, s.unit, s.color); err != nil {
		return fmt.Errorf("inject overlay: %w", err)
	}
	return nil
}

// Destroy removes the overlay element if present.
func (s *PageSurface) Destroy() error {
	if _, err := s.page.Eval(destroyOverlayScript, OverlayID); err != nil {
		return fmt.Errorf("remove overlay: %w", err)
	}
	return nil
}

// Present reports whether the overlay element exists in the page.
func (s *PageSurface) Present() (bool, error) {
	res, err := s.page.Eval(`(id) => document.getElementById(id) !== null`, OverlayID)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}
