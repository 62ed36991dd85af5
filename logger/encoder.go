package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Sunset palette (warm, muted, easy on eyes during long readings)
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	colorFg      = "\x1b[38;5;223m" // soft cream
	colorTime    = "\x1b[38;5;108m" // muted cyan-green
	colorSaffron = "\x1b[38;5;208m" // warm orange, components
	colorGold    = "\x1b[38;5;214m" // soft yellow, warnings
	colorGreen   = "\x1b[38;5;142m" // muted green, numbers
	colorBlue    = "\x1b[38;5;109m" // soft blue, IDs
	colorRed     = "\x1b[38;5;167m" // warm red, errors
	colorRedBg   = "\x1b[48;5;88m"
	colorGoldBg  = "\x1b[48;5;58m"
)

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  server  Chart computed  req_9f3a (9 planets)"
type minimalEncoder struct {
	zapcore.Encoder // embedded base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	final.AppendString(colorTime)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorSaffron)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if len(fields) > 0 {
		if extracted := extractFieldValues(fields); extracted != "" {
			final.AppendString("  ")
			final.AppendString(extracted)
		}
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorGoldBg + colorGold + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: server -> s, ai.openrouter -> a.openrouter
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}

	if field.Type == zapcore.Int64Type || field.Type == zapcore.Int32Type ||
		field.Type == zapcore.Int16Type || field.Type == zapcore.Int8Type ||
		field.Type == zapcore.Uint64Type || field.Type == zapcore.Uint32Type ||
		field.Type == zapcore.Uint16Type || field.Type == zapcore.Uint8Type {
		return fmt.Sprintf("%d", field.Integer)
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}

	return ""
}

// extractFieldValues pulls just the values from structured fields.
// Input: {"request_id": "req_9f3a", "planets": 9, "place": "Chennai"}
// Output: "req_9f3a Chennai (9 planets)" with colored IDs and numbers.
func extractFieldValues(fields []zapcore.Field) string {
	var values []string
	var planetCount, yogaCount string

	for _, field := range fields {
		switch field.Key {
		case "request_id", "client_id":
			if val := getFieldValue(field); val != "" {
				values = append(values, colorBlue+val+colorReset)
			}
		case "place", "style", "model", "provider", "lang":
			if val := getFieldValue(field); val != "" {
				values = append(values, colorFg+val+colorReset)
			}
		case "planets":
			planetCount = getFieldValue(field)
		case "yogas":
			yogaCount = getFieldValue(field)
		case "duration_ms":
			if val := getFieldValue(field); val != "" {
				values = append(values, colorGreen+val+colorReset+"ms")
			}
		}
	}

	if planetCount != "" {
		values = append(values, colorFg+"("+colorGreen+planetCount+colorReset+colorFg+" planets)"+colorReset)
	}
	if yogaCount != "" {
		values = append(values, colorFg+"("+colorGreen+yogaCount+colorReset+colorFg+" yogas)"+colorReset)
	}

	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, " ")
}
