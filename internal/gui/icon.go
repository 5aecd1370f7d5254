package gui

import "fyne.io/fyne/v2"

var appIconSVG = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256">
<rect x="16" y="16" width="224" height="224" rx="36" fill="#fafafa" stroke="#c0392b" stroke-width="12"/>
<text x="128" y="170" font-size="140" text-anchor="middle" font-family="sans-serif" fill="#2c3e50">&#x304B;</text>
</svg>`)

// GetAppIcon returns the application icon resource
func GetAppIcon() fyne.Resource {
	return fyne.NewStaticResource("kanacards.svg", appIconSVG)
}
