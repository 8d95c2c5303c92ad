// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	levelWidth = 5 // padded width of the level label
	TimeFormat = time.RFC3339
)

// 🎨 levelColors maps each level to its label color
var levelColors = map[zerolog.Level]color.Attribute{
	zerolog.TraceLevel: color.FgHiBlack,
	zerolog.DebugLevel: color.FgBlue,
	zerolog.InfoLevel:  color.FgGreen,
	zerolog.WarnLevel:  color.FgYellow,
	zerolog.ErrorLevel: color.FgRed,
	zerolog.FatalLevel: color.FgHiRed,
	zerolog.PanicLevel: color.FgHiRed,
}

// 🏭 New creates a console logger writing "timestamp level message fields" lines to out
func New(out io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	return zerolog.New(NewConsoleWriter(out, noColor)).Level(level).With().Timestamp().Logger()
}

// 🖥️ NewConsoleWriter returns the human readable writer used by New.
// Writes to out are serialized so concurrent copies never interleave lines.
func NewConsoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         zerolog.SyncWriter(out),
		NoColor:     noColor,
		TimeFormat:  TimeFormat,
		FormatLevel: formatLevel(noColor),
	}
}

// 📝 formatLevel renders the level label with fatih/color
func formatLevel(noColor bool) zerolog.Formatter {
	return func(i interface{}) string {
		name, _ := i.(string)
		label := fmt.Sprintf("%-*s", levelWidth, strings.ToUpper(name))
		if name == "" {
			label = fmt.Sprintf("%-*s", levelWidth, "???")
		}

		lvl, err := zerolog.ParseLevel(name)
		attr, ok := levelColors[lvl]
		if err != nil || !ok {
			return label
		}

		c := color.New(attr)
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.Sprint(label)
	}
}

// 🔍 ColorEnabled reports whether w is a terminal that can render colors
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
