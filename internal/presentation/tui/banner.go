package tui

import (
	"fmt"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                   _`, "#c0392b"},
	{`  _ __   __ _ _ __| | ___  _ __`, "#b9770e"},
	{` | '_ \ / _' | '__| |/ _ \| '__|`, "#7d6608"},
	{` | |_) | (_| | |  | | (_) | |`, "#1e8449"},
	{` | .__/ \__,_|_|  |_|\___/|_|`, "#1f618d"},
	{` |_|`, "#6c3483"},
}

// Banner writes the title banner. It stays buffered until the next redraw.
func (p *Presenter) Banner() error {
	fmt.Fprintln(p.w)
	for _, l := range bannerLines {
		fmt.Fprintln(p.w, p.out.String(l.text).Foreground(p.out.Color(l.color)))
	}
	_, err := fmt.Fprintln(p.w)
	return err
}
