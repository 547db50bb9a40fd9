package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	SetLoggerConsole(false)
}

var ColourDisabled bool

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta

	colorBold = 1
)

// Helper for escape analysis; avoids go thinking the variadic argument escapes.
// Default "verb" behaviour.
func V[T any](copyThatEscapes T) string {
	return fmt.Sprintf("%v", copyThatEscapes)
}

// Helper for escape analysis; avoids go thinking the variadic argument escapes.
// Uses the given format string.
func F[T any](f string, copyThatEscapes T) string {
	return fmt.Sprintf(f, copyThatEscapes)
}

func colorize(s interface{}, c int) string {
	if ColourDisabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// 0 for info, 1 for debug, 2+ for trace.
func SetLevel(level int) {
	switch {
	case level <= 0:
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	case level == 1:
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	default:
		log.Logger = log.Logger.Level(zerolog.TraceLevel)
	}
}

func SetLoggerConsole(noColour bool) {
	SetLoggerOutput(os.Stdout, noColour)
}

// Console formatted logging to the given writer. Tests point this at a buffer.
func SetLoggerOutput(out io.Writer, noColour bool) {
	ColourDisabled = noColour
	zerolog.CallerMarshalFunc = callerMarshal

	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: noColour}
	cw.FormatLevel = consoleFormatLevel
	cw.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.CallerFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}
	log.Logger = zerolog.New(cw).With().Timestamp().Caller().Logger()
}

func callerMarshal(pc uintptr, file string, line int) string {
	short := file
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		short = file[i+1:]
	}
	file = fmt.Sprintf("%15s.%-4s", short, strconv.Itoa(line))
	if len(file) > 20 {
		file = ".." + file[len(file)-18:]
	}
	return colorize(file, colorBlack)
}

func consoleFormatLevel(i any) string {
	ll, ok := i.(string)
	if !ok {
		if i == nil {
			return colorize("| ??? |", colorBold)
		}
		return strings.ToUpper(fmt.Sprintf("| %5s |", i))
	}
	switch ll {
	case zerolog.LevelTraceValue:
		return colorize("| TRACE |", colorMagenta)
	case zerolog.LevelDebugValue:
		return colorize("| DEBUG |", colorYellow)
	case zerolog.LevelInfoValue:
		return colorize("| INFO  |", colorGreen)
	case zerolog.LevelWarnValue:
		return colorize("| WARN  |", colorRed)
	case zerolog.LevelErrorValue:
		return colorize(colorize("| ERROR |", colorRed), colorBold)
	case zerolog.LevelFatalValue:
		return colorize(colorize("| FATAL |", colorRed), colorBold)
	case zerolog.LevelPanicValue:
		return colorize(colorize("| PANIC |", colorRed), colorBold)
	}
	return colorize(ll, colorBold)
}

func MemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Debug().Msg("(MiB): Alloc: " + V(m.Alloc/1024/1024) + " Sys: " + V(m.Sys/1024/1024) +
		" TotalAlloc: " + V(m.TotalAlloc/1024/1024) +
		" HeapInuse: " + V(m.HeapInuse/1024/1024) +
		". (#): NumGC: " + V(m.NumGC))
}
