package config

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var durationType = reflect.TypeFor[time.Duration]()

// decodeHook reads bare numbers as seconds ("timeout: 30") and keeps Go
// duration strings ("250ms") working.
func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// secondsToDurationHookFunc converts ints, floats and numeric strings into
// durations of that many seconds. Values that already are durations, such
// as the defaults, pass through unchanged.
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType || from == durationType {
			return data, nil
		}

		var secs float64
		switch v := data.(type) {
		case int:
			secs = float64(v)
		case int64:
			secs = float64(v)
		case uint64:
			secs = float64(v)
		case float64:
			secs = v
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return data, nil
			}
			secs = f
		default:
			return data, nil
		}

		return time.Duration(secs * float64(time.Second)), nil
	}
}
