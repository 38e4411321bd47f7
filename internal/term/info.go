// Package term prints the styled terminal report: header, file
// information panel, analysis summary and timing statistics.
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"spekgram/internal/decode"
	"spekgram/internal/spectro"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F87FF"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F87FF")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD7FF")).
			Width(14)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")).
			Bold(true)
)

// PrintHeader prints the tool banner.
func PrintHeader(name, version string) {
	rule := ruleStyle.Render(strings.Repeat("─", 56))
	fmt.Println()
	fmt.Println(rule)
	fmt.Println("  " + titleStyle.Render(name+" · audio spectrum analyzer") +
		dimStyle.Render("  "+version))
	fmt.Println(rule)
}

// PrintFileInfo prints the decoded file metadata panel.
func PrintFileInfo(path string, data *decode.AudioData) {
	rows := []string{
		row("File", truncatePath(path, 40)),
		row("Duration", formatDuration(data.Duration)),
		row("Sample Rate", fmt.Sprintf("%d Hz", data.SampleRate)),
		row("Channels", formatChannels(data.Channels)),
		row("Bit Depth", fmt.Sprintf("%d bits", data.BitDepth)),
	}
	fmt.Println(panelStyle.Render(strings.Join(rows, "\n")))
}

// PrintAnalysis prints a one-line summary of the rendered dynamic
// range and, when enabled, the measured rolloff ceiling.
func PrintAnalysis(res *spectro.Result) {
	line := fmt.Sprintf("%d frames · %.1f dB ceiling · %.1f dB floor",
		res.Frames, res.MaxDB, res.MinDB)
	if res.Rolloff != nil {
		peak := 0.0
		for _, f := range res.Rolloff {
			if f > peak {
				peak = f
			}
		}
		line += fmt.Sprintf(" · rolloff peak %.1f kHz", peak/1000)
	}
	fmt.Println(dimStyle.Render(line))
}

// PrintSaved reports the output path.
func PrintSaved(path string) {
	fmt.Println(accentStyle.Render("✓") + " saved to " + accentStyle.Render(path))
}

// PrintTimings prints the per-stage timing statistics shown in verbose
// mode.
func PrintTimings(decodeT, analyzeT, overlayT, total time.Duration) {
	fmt.Println()
	fmt.Println(titleStyle.Render("Timing Statistics"))
	fmt.Printf("  %s %8s\n", labelStyle.Render("Decoding:"), decodeT.Round(time.Millisecond))
	fmt.Printf("  %s %8s\n", labelStyle.Render("Analysis:"), analyzeT.Round(time.Millisecond))
	fmt.Printf("  %s %8s\n", labelStyle.Render("Overlay:"), overlayT.Round(time.Millisecond))
	fmt.Printf("  %s %8s\n", labelStyle.Render("Total:"), total.Round(time.Millisecond))
}

func row(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func formatChannels(n int) string {
	switch n {
	case 1:
		return "1 (mono)"
	case 2:
		return "2 (stereo)"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	millis := int(d.Milliseconds()) % 1000
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", total/3600, (total%3600)/60, total%60, millis)
	}
	return fmt.Sprintf("%d:%02d.%03d", total/60, total%60, millis)
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-(maxLen-3):]
}
