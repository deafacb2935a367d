package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the waymark banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __      __                                 __    `, "#818cf8"},
		{`/  \    /  \_____  ___.__. _____ _____ _______|  | __`, "#a78bfa"},
		{`\   \/\/   /\__  \<   |  |/     \\__  \\_  __ \  |/ /`, "#c084fc"},
		{` \        /  / __ \\___  |  Y Y  \/ __ \|  | \/    < `, "#e879f9"},
		{`  \__/\  /  (____  / ____|__|_|  (____  /__|  |__|_ \`, "#f472b6"},
		{`       \/        \/\/          \/     \/           \/`, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+version).Faint())
}
