package enforce

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Halts the program (by panic) if query is false, a non-nil error, or a message string.
// Extra args are logged as context.
func ENFORCE(query any, args ...any) {
	switch t := query.(type) {
	case bool:
		if !t {
			log.Error().Msg("ENFORCE: " + fmt.Sprint(args...))
			panic("enforce failed")
		}
	case error:
		log.Error().Err(t).Msg("ENFORCE: " + fmt.Sprint(args...))
		panic(t)
	case string:
		log.Error().Msg("ENFORCE: " + t + " " + fmt.Sprint(args...))
		panic(t)
	case nil:
		// enforce.ENFORCE(err) with a nil error.
	default:
		log.Error().Msg("ENFORCE: incorrect usage of enforce with type: " + fmt.Sprintf("%T", t) + " - " + fmt.Sprint(t) + " - " + fmt.Sprint(args...))
		panic(t)
	}
}
