package preset

import (
	"strings"
	"testing"
)

func TestFor(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"How to Tune Amp Gain and LPF", "amp-tuning"},
		{"Amplifier Tuning 101", "amp-tuning"},
		{"Setting HPF on Door Speakers", "amp-tuning"},
		{"Best 6.5 inch Speakers 2024", "generic"},
		{"Sealed vs Ported Subwoofer Box", "sub-enclosure"},
		{"Build a Sub Enclosure", "sub-enclosure"},
		{"Fix Alternator Whine Fast", "noise"},
		{"Ground Loop Isolators Explained", "noise"},
		// first match wins: this title hits both the amp and the noise rule
		{"Amp Gain and Alternator Whine", "amp-tuning"},
		{"", "generic"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := For(tt.title).Name; got != tt.want {
				t.Fatalf("For(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestAmpPatternUnchanged(t *testing.T) {
	if got := Rules[0].Pattern.String(); got != `(amp|amplifier).*tune|tuning|gain|lpf|hpf` {
		t.Fatalf("amp pattern = %s", got)
	}
}

func TestPresetsAreComplete(t *testing.T) {
	all := []Preset{Fallback}
	for _, r := range Rules {
		all = append(all, r.Preset)
	}
	for _, p := range all {
		if !strings.Contains(p.HTML, `class="guide-content"`) {
			t.Errorf("%s: missing guide section", p.Name)
		}
		if len(p.FAQ) == 0 || len(p.Steps) == 0 {
			t.Errorf("%s: faq=%d steps=%d", p.Name, len(p.FAQ), len(p.Steps))
		}
	}
}
