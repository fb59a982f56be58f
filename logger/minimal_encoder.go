package logger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest Dark palette
var palette = struct {
	fg       string
	green    string
	greenMid string
	aqua     string
	orange   string
	yellow   string
	red      string
	redBg    string
	yellowBg string
}{
	fg:       "\x1b[38;5;223m",
	green:    "\x1b[38;5;108m",
	greenMid: "\x1b[38;5;107m",
	aqua:     "\x1b[38;5;109m",
	orange:   "\x1b[38;5;208m",
	yellow:   "\x1b[38;5;179m",
	red:      "\x1b[38;5;167m",
	redBg:    "\x1b[48;5;52m",
	yellowBg: "\x1b[48;5;58m",
}

var bufferPool = buffer.NewPool()

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  gen  wrote file  csharp Defaults.cs 2ms entries=12"
type minimalEncoder struct {
	zapcore.Encoder
	color  bool
	fields []zapcore.Field
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		color:   color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		color:   enc.color,
	}
	clone.fields = append(clone.fields, enc.fields...)
	return clone
}

// The Add* methods receive logger.With(...) context. Keep those fields so they
// render like per-call fields.
func (enc *minimalEncoder) AddString(key, value string) {
	enc.fields = append(enc.fields, zap.String(key, value))
}

func (enc *minimalEncoder) AddInt64(key string, value int64) {
	enc.fields = append(enc.fields, zap.Int64(key, value))
}

func (enc *minimalEncoder) AddBool(key string, value bool) {
	enc.fields = append(enc.fields, zap.Bool(key, value))
}

func (enc *minimalEncoder) AddFloat64(key string, value float64) {
	enc.fields = append(enc.fields, zap.Float64(key, value))
}

func (enc *minimalEncoder) AddDuration(key string, value time.Duration) {
	enc.fields = append(enc.fields, zap.Duration(key, value))
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(palette.greenMid, ent.Time.Format("15:04:05")))

	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(palette.orange, abbreviateName(ent.LoggerName)))
	}

	final.AppendString("  ")
	final.AppendString(enc.paint(palette.fg, ent.Message))

	all := make([]zapcore.Field, 0, len(enc.fields)+len(fields))
	all = append(all, enc.fields...)
	all = append(all, fields...)
	if rendered := enc.renderFields(all); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	if !enc.color {
		return level.CapitalString()
	}
	switch level {
	case zapcore.DebugLevel:
		return palette.aqua + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + palette.yellowBg + palette.yellow + "WARN" + colorReset
	default:
		return colorBold + palette.redBg + palette.red + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: gen.csharp -> g.csharp
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// renderFields never drops a field. Well-known fields come first in a compact
// form, everything else follows as key=value sorted by key.
func (enc *minimalEncoder) renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}

	values := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(values)
	}

	var parts []string
	if v, ok := values.Fields[FieldPlatform]; ok {
		parts = append(parts, enc.paint(palette.aqua, fmt.Sprint(v)))
		delete(values.Fields, FieldPlatform)
	}
	if v, ok := values.Fields[FieldFile]; ok {
		parts = append(parts, enc.paint(palette.green, fmt.Sprint(v)))
		delete(values.Fields, FieldFile)
	}
	if v, ok := values.Fields[FieldDurationMS]; ok {
		parts = append(parts, enc.paint(palette.green, fmt.Sprint(v))+"ms")
		delete(values.Fields, FieldDurationMS)
	}

	keys := make([]string, 0, len(values.Fields))
	for k := range values.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, values.Fields[k]))
	}

	return strings.Join(parts, " ")
}
