// Package font resolves label font specs such as "10px sans" into
// golang.org/x/image font faces.
package font

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family selects one of the embedded Go fonts.
type Family string

const (
	Sans Family = "sans"
	Mono Family = "mono"
)

// Spec describes a label font: a family and a pixel size.
type Spec struct {
	Family Family
	Size   float64
}

// Default is the label font used by the renderer.
var Default = Spec{Family: Sans, Size: 10}

func (s Spec) String() string {
	return strconv.FormatFloat(s.Size, 'f', -1, 64) + "px " + string(s.Family)
}

// ParseSpec parses a CSS-like "<size>px <family>" string. Unknown families
// fall back to sans so that specs like "10px Arial" keep working.
func ParseSpec(s string) (Spec, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Spec{}, fmt.Errorf("empty font spec")
	}

	size, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "px"), 64)
	if err != nil || size <= 0 {
		return Spec{}, fmt.Errorf("invalid font size in %q", s)
	}

	spec := Spec{Family: Sans, Size: size}
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "mono", "monospace", "courier":
			spec.Family = Mono
		}
	}
	return spec, nil
}

var (
	parseOnce sync.Once
	parsed    map[Family]*opentype.Font
	parseErr  error
)

func load(family Family) (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed = make(map[Family]*opentype.Font)
		for fam, data := range map[Family][]byte{Sans: goregular.TTF, Mono: gomono.TTF} {
			f, err := opentype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("failed to parse %s font: %w", fam, err)
				return
			}
			parsed[fam] = f
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if f, ok := parsed[family]; ok {
		return f, nil
	}
	return parsed[Sans], nil
}

// NewFace returns a face for spec. Faces are not safe for concurrent use,
// so every surface creates its own. If the embedded fonts cannot be
// parsed, the fixed 7x13 bitmap face is returned along with the error.
func NewFace(spec Spec) (xfont.Face, error) {
	f, err := load(spec.Family)
	if err != nil {
		return basicfont.Face7x13, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, fmt.Errorf("failed to create face %s: %w", spec, err)
	}
	return face, nil
}
