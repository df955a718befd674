package browser

import (
	"context"
	"fmt"

	"gridkit/internal/logging"
	"gridkit/internal/validator"

	"github.com/go-rod/rod"
)

// DefaultSampleLimit caps how many elements one page audit inspects.
const DefaultSampleLimit = 400

// OverlayID is the DOM id of the injected grid overlay. The observer skips it.
const OverlayID = "gridkit-overlay"

// stylePair keeps computed styles in sampling order.
type stylePair struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// elementSample is one element as reported by sampleScript.
type elementSample struct {
	Name       string      `json:"name"`
	Tag        string      `json:"tag"`
	Role       string      `json:"role"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Styles     []stylePair `json:"styles"`
	Color      string      `json:"color"`
	Background string      `json:"background"`
	FontSize   float64     `json:"fontSize"`
	FontWeight int         `json:"fontWeight"`
	Chars      int         `json:"chars"`
	HasText    bool        `json:"hasText"`
}

// sampleScript walks components, interactive elements and text blocks and
// returns their computed spacing, layering, motion, colour and box data.
// Line length is estimated from the element width over the "0" glyph width,
// which is how the ch unit is defined.
const sampleScript = `(limit, overlayID) => {
	const spacing = ["padding-top", "padding-right", "padding-bottom", "padding-left",
		"margin-top", "margin-right", "margin-bottom", "margin-left", "row-gap", "column-gap"];
	const motion = ["transition-duration", "animation-duration"];
	const measured = new Set(["p", "li", "blockquote", "dd", "figcaption"]);
	const selector = "[data-component], button, a, input, select, textarea, summary, [role], p, li, h1, h2, h3, h4, h5, h6";
	const ctx = document.createElement("canvas").getContext("2d");
	const opaque = (c) => c && c !== "transparent" && !/rgba\([^)]*,\s*0\)$/.test(c);
	const backgroundOf = (el) => {
		for (let n = el; n && n.nodeType === 1; n = n.parentElement) {
			const c = getComputedStyle(n).backgroundColor;
			if (opaque(c)) return c;
		}
		return "rgb(255, 255, 255)";
	};
	const seen = new Map();
	const out = [];
	for (const el of document.querySelectorAll(selector)) {
		if (out.length >= limit) break;
		if (el.id === overlayID || el.closest("#" + overlayID)) continue;
		const cs = getComputedStyle(el);
		if (cs.display === "none" || cs.visibility === "hidden") continue;
		const tag = el.tagName.toLowerCase();
		let name = el.dataset.component || (el.id ? tag + "#" + el.id : tag);
		const n = (seen.get(name) || 0) + 1;
		seen.set(name, n);
		if (n > 1) name = name + "[" + n + "]";
		const styles = [];
		for (const p of spacing) styles.push({property: p, value: cs.getPropertyValue(p)});
		styles.push({property: "z-index", value: cs.zIndex});
		for (const p of motion) styles.push({property: p, value: cs.getPropertyValue(p)});
		const text = (el.textContent || "").trim();
		let chars = 0;
		if (measured.has(tag) && text.length > 0 && ctx) {
			ctx.font = cs.font;
			const ch = ctx.measureText("0").width;
			if (ch > 0) chars = Math.round(el.clientWidth / ch);
		}
		const r = el.getBoundingClientRect();
		out.push({
			name: name,
			tag: tag,
			role: el.getAttribute("role") || "",
			width: r.width,
			height: r.height,
			styles: styles,
			color: cs.color,
			background: backgroundOf(el),
			fontSize: parseFloat(cs.fontSize) || 0,
			fontWeight: parseInt(cs.fontWeight, 10) || 400,
			chars: chars,
			hasText: text.length > 0,
		});
	}
	return out;
}`

// Observer turns a loaded page into validator components.
type Observer struct {
	limit int
}

// NewObserver creates an observer. A non-positive limit uses DefaultSampleLimit.
func NewObserver(limit int) *Observer {
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	return &Observer{limit: limit}
}

// Observe samples the page and returns components in document order.
func (o *Observer) Observe(ctx context.Context, page *rod.Page) ([]validator.Component, error) {
	timer := logging.StartTimer(logging.CategoryBrowser, "observe")
	defer timer.Stop()

	res, err := page.Context(ctx).Eval(sampleScript, o.limit, OverlayID)
	if err != nil {
		return nil, fmt.Errorf("sample page styles: %w", err)
	}

	var samples []elementSample
	if err := res.Value.Unmarshal(&samples); err != nil {
		return nil, fmt.Errorf("decode page samples: %w", err)
	}
	logging.BrowserDebug("Sampled %d elements", len(samples))
	return toComponents(samples), nil
}

// isLargeText applies the WCAG large-text cut: 18pt, or 14pt bold.
func isLargeText(fontSize float64, weight int) bool {
	return fontSize >= 24 || (fontSize >= 18.66 && weight >= 700)
}

func toComponents(samples []elementSample) []validator.Component {
	components := make([]validator.Component, 0, len(samples))
	for _, s := range samples {
		var props []validator.ObservedProperty
		for _, st := range s.Styles {
			props = append(props, validator.ObservedProperty{
				Property: st.Property,
				Value:    st.Value,
				Element:  s.Tag,
				Role:     s.Role,
			})
		}
		if s.Width > 0 || s.Height > 0 {
			props = append(props, validator.ObservedProperty{
				Property: "box",
				Element:  s.Tag,
				Role:     s.Role,
				Box:      &validator.Box{Width: s.Width, Height: s.Height},
			})
		}
		if s.Chars > 0 {
			props = append(props, validator.ObservedProperty{
				Property: "characters-per-line",
				Number:   validator.Num(float64(s.Chars)),
				Element:  s.Tag,
			})
		}
		if s.HasText && s.Color != "" && s.Background != "" {
			props = append(props, validator.ObservedProperty{
				Property:   "color",
				Value:      s.Color,
				Element:    s.Tag,
				Foreground: s.Color,
				Background: s.Background,
				LargeText:  isLargeText(s.FontSize, s.FontWeight),
			})
		}
		components = append(components, validator.Component{Name: s.Name, Properties: props})
	}
	return components
}
