// Package preset picks a canned tutorial block for an article from its
// title. Rules are tried in order and the first match wins.
package preset

import (
	"regexp"
	"strings"
)

type FAQ struct {
	Question string
	Answer   string
}

type Step struct {
	Name string
	Text string
}

// Preset is the body fragment plus the data behind its FAQPage and HowTo
// structured data.
type Preset struct {
	Name  string
	HTML  string
	FAQ   []FAQ
	Steps []Step
}

type Rule struct {
	Pattern *regexp.Regexp
	Preset  Preset
}

// Rules is the ordered rule table. The amplifier pattern is kept verbatim
// from the published site so existing pages keep their content.
var Rules = []Rule{
	{Pattern: regexp.MustCompile(`(amp|amplifier).*tune|tuning|gain|lpf|hpf`), Preset: ampTuning},
	{Pattern: regexp.MustCompile(`(sub|subwoofer)s?.*(box|enclosure)|ported|sealed|bandpass`), Preset: subEnclosure},
	{Pattern: regexp.MustCompile(`ground loop|alternator (whine|noise)|engine (whine|noise)|whin(e|ing)`), Preset: noise},
}

// For returns the preset of the first matching rule, or Fallback.
func For(title string) Preset {
	lower := strings.ToLower(title)
	for _, r := range Rules {
		if r.Pattern.MatchString(lower) {
			return r.Preset
		}
	}
	return Fallback
}

const disclaimer = `  <p class="muted small"><em>This tutorial is auto-generated for convenience. Always follow your equipment’s manual and verify settings by ear.</em></p>
`

var ampTuning = Preset{
	Name: "amp-tuning",
	Steps: []Step{
		{"Set a flat baseline", "On the head unit, turn EQ, Loudness, and Bass Boost OFF. Set volume to ~75% of max."},
		{"Set the gain correctly", "Start with the gain at minimum. Play a clean 40 Hz tone (subs) or 1 kHz tone (speakers). Raise gain until just before distortion, then back down slightly."},
		{"Configure filters", "Set LPF for subwoofers to 80–100 Hz. Set HPF for door speakers to 80–120 Hz."},
		{"Use bass boost sparingly", "Keep Bass Boost at 0; add a little only if needed after setting gain."},
		{"Fine-tune by ear", "Listen to varied music and adjust in small steps over several days."},
	},
	FAQ: []FAQ{
		{"Do I need a multimeter to tune an amp?", "It helps but isn't required. Your ears are fine for basic tuning; a meter or oscilloscope improves precision."},
		{"What volume should I tune at?", "About 70–80% of your head unit’s maximum volume provides a good reference."},
		{"Why use HPF on door speakers?", "HPF protects mids from low-frequency energy, improving clarity and reducing distortion."},
	},
	HTML: `
<section class="guide-content">
` + disclaimer + `
  <h2>How to Tune a Car Amplifier</h2>
  <ol>
    <li><strong>Flat baseline:</strong> Turn off EQ/Loudness/Bass Boost. Volume ~75% of max.</li>
    <li><strong>Gain:</strong> Start at minimum; play a 40 Hz (subs) or 1 kHz (speakers) tone; raise until just before distortion, then back down slightly.</li>
    <li><strong>Filters:</strong> LPF = 80–100 Hz for subs; HPF = 80–120 Hz for door speakers.</li>
    <li><strong>Bass Boost:</strong> Keep at 0; add a little only if needed after gain is set.</li>
    <li><strong>Fine-tune:</strong> Listen to several tracks and adjust in small steps over a few days.</li>
  </ol>

  <h3>Common Mistakes</h3>
  <ul>
    <li>Using the <em>gain</em> as a volume knob (it isn’t).</li>
    <li>Maxing bass boost, which causes clipping and heat.</li>
    <li>Running speakers without an HPF, leading to muddy sound and damage.</li>
    <li>Poor ground (painted metal) causing noise/whine.</li>
  </ul>
</section>`,
}

var subEnclosure = Preset{
	Name: "sub-enclosure",
	Steps: []Step{
		{"Check the specs", "Find the recommended sealed and ported volumes in the subwoofer manual."},
		{"Measure the space", "Measure the trunk or cab area and subtract room for wiring and the amplifier."},
		{"Pick sealed or ported", "Sealed boxes are smaller and tighter; ported boxes are louder around the tuning frequency."},
		{"Seal and secure", "Seal every joint, use 3/4\" MDF, and strap the box down so it cannot move."},
	},
	FAQ: []FAQ{
		{"Is a sealed or ported box better?", "Sealed favors accuracy and small size; ported favors output. Choose by music and space."},
		{"Does box volume really matter?", "Yes. A box far from the recommended volume changes the response and can overload the driver."},
	},
	HTML: `
<section class="guide-content">
` + disclaimer + `
  <h2>Choosing a Subwoofer Enclosure</h2>
  <ol>
    <li><strong>Specs:</strong> Start from the manufacturer’s recommended net volume.</li>
    <li><strong>Space:</strong> Measure what you can give up in the trunk or cab.</li>
    <li><strong>Type:</strong> Sealed for tight, accurate bass; ported for more output per watt.</li>
    <li><strong>Build:</strong> 3/4" MDF, sealed seams, and a box that is strapped down.</li>
  </ol>

  <h3>Common Mistakes</h3>
  <ul>
    <li>Ignoring the driver’s displacement when computing net volume.</li>
    <li>Air leaks around the terminal cup or the woofer gasket.</li>
    <li>Letting the box slide around under braking.</li>
  </ul>
</section>`,
}

var noise = Preset{
	Name: "noise",
	Steps: []Step{
		{"Isolate the source", "Unplug the RCA cables at the amplifier. If the noise stops, it is coming in through the signal path."},
		{"Fix the ground", "Ground the amplifier to bare chassis metal with a short cable of the same gauge as the power wire."},
		{"Reroute signal cables", "Run RCAs on the opposite side of the car from the power wire."},
		{"Add a filter last", "Use a ground loop isolator only after the wiring is correct."},
	},
	FAQ: []FAQ{
		{"Why does the whine follow engine RPM?", "Alternator noise rides on the ground or the signal cables; its pitch tracks engine speed."},
		{"Will a noise filter fix it?", "Sometimes, but a proper ground and cable routing fixes the cause instead of masking it."},
	},
	HTML: `
<section class="guide-content">
` + disclaimer + `
  <h2>Fixing Alternator Whine and Ground Loops</h2>
  <ol>
    <li><strong>Isolate:</strong> Pull the RCAs at the amp to see whether the noise is in the signal path.</li>
    <li><strong>Ground:</strong> Short ground to bare metal; sand off paint and use a star washer.</li>
    <li><strong>Routing:</strong> Keep RCAs away from the power wire.</li>
    <li><strong>Filter:</strong> Only add an isolator once wiring is right.</li>
  </ol>

  <h3>Common Mistakes</h3>
  <ul>
    <li>Grounding to a painted or seat-belt bolt.</li>
    <li>Running RCAs alongside the power cable.</li>
    <li>Several components grounded at different points.</li>
  </ul>
</section>`,
}

// Fallback is returned when no rule matches.
var Fallback = Preset{
	Name: "generic",
	Steps: []Step{
		{"Prepare", "Gather tools and read the manufacturer’s instructions."},
		{"Configure basics", "Apply recommended baseline settings."},
		{"Optimize", "Adjust settings to your goals and vehicle."},
		{"Test & refine", "Use several tracks and refine over a few days."},
	},
	FAQ: []FAQ{
		{"How long does this take?", "Usually 20–40 minutes the first time."},
		{"Any safety notes?", "Avoid clipping, check wiring/fuses, and ensure good ventilation around amplifiers."},
	},
	HTML: `
<section class="guide-content">
  <p class="muted small"><em>This tutorial is auto-generated for convenience. Always follow your equipment’s manual.</em></p>

  <h2>Step-by-Step Guide</h2>
  <ol>
    <li><strong>Prepare:</strong> Gather tools and read the manual.</li>
    <li><strong>Configure basics:</strong> Apply recommended baseline settings.</li>
    <li><strong>Optimize:</strong> Adjust to your goals and vehicle.</li>
    <li><strong>Test &amp; refine:</strong> Use several tracks and refine over a few days.</li>
  </ol>

  <h3>Common Mistakes</h3>
  <ul>
    <li>Skipping tuning and only installing hardware.</li>
    <li>Random settings with no baseline.</li>
    <li>Not testing across multiple genres/volumes.</li>
  </ul>
</section>`,
}
