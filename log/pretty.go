package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers.
// Styles are bound to a renderer for the handler's writer, so colors are
// dropped automatically when the writer is not a terminal.
type palette struct {
	key, str, num, yes, no, dur, when, null lipgloss.Style
	level                                   map[Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		yes:  fg("2"),
		no:   fg("1"),
		dur:  fg("5"),
		when: fg("4"),
		null: fg("8"),
		level: map[Level]lipgloss.Style{
			LevelTrace: fg("8"),
			LevelDebug: fg("4"),
			LevelInfo:  fg("2"),
			LevelWarn:  fg("3").Bold(true),
			LevelError: fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(level slog.Level) lipgloss.Style {
	switch l := Level(level); {
	case l >= LevelError:
		return p.level[LevelError]
	case l >= LevelWarn:
		return p.level[LevelWarn]
	case l >= LevelInfo:
		return p.level[LevelInfo]
	case l >= LevelDebug:
		return p.level[LevelDebug]
	default:
		return p.level[LevelTrace]
	}
}

// value renders a single attribute value.
func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.when.Render(v.Time().String())

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return p.null.Render("null")
		case slog.Level:
			return p.levelStyle(a).Render(strings.ToUpper(Level(a).String()))
		case error:
			return p.no.Render(a.Error())
		default:
			return p.str.Render(fmt.Sprint(a))
		}

	default:
		return p.str.Render(v.String())
	}
}

func source(r slog.Record) string {
	if src := r.Source(); src != nil {
		return fmt.Sprintf("%s:%d", src.File, src.Line)
	}

	return ""
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	palette    palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	group      string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		palette:    newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if ts := formatRecordTime(h.formatTime, r.Time); ts != "" {
		h.write(buf, "", slog.String(slog.TimeKey, ts))
	}

	h.write(buf, "", slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := source(r); src != "" {
			h.write(buf, "", slog.String(slog.SourceKey, src))
		}
	}

	h.write(buf, "", slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.write(buf, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.write(buf, h.group, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], qualify(h.group, attrs)...)

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.group = join(h.group, name)

	return &c
}

func (h *prettyTextHandler) write(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, sub := range a.Value.Group() {
			h.write(buf, join(group, a.Key), sub)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.palette.key.Render(join(group, a.Key)))
	buf.WriteByte('=')
	buf.WriteString(h.palette.value(a.Value))
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
type prettyJSONHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	palette    palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	group      string
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:       *opts,
		formatTime: formatTime,
		palette:    newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]string, 0, r.NumAttrs()+len(h.attrs)+4)
	field := func(key string, v slog.Value) {
		fields = append(fields, fmt.Sprintf(
			"  %s: %s", h.palette.key.Render(strconv.Quote(key)), h.palette.value(v),
		))
	}

	if ts := formatRecordTime(h.formatTime, r.Time); ts != "" {
		field(slog.TimeKey, slog.StringValue(ts))
	}

	field(slog.LevelKey, slog.AnyValue(r.Level))

	if h.opts.AddSource {
		if src := source(r); src != "" {
			field(slog.SourceKey, slog.StringValue(src))
		}
	}

	field(slog.MessageKey, slog.StringValue(r.Message))

	var flatten func(group string, a slog.Attr)

	flatten = func(group string, a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			for _, sub := range a.Value.Group() {
				flatten(join(group, a.Key), sub)
			}

			return
		}

		if !a.Equal(slog.Attr{}) {
			field(join(group, a.Key), a.Value)
		}
	}

	for _, a := range h.attrs {
		flatten("", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		flatten(h.group, a)

		return true
	})

	out := "{\n" + strings.Join(fields, ",\n") + "\n}\n"

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, out)

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], qualify(h.group, attrs)...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.group = join(h.group, name)

	return &c
}

func formatRecordTime(format FormatTime, t time.Time) string {
	if t.IsZero() || format == nil {
		return ""
	}

	return format(t)
}

func join(group, key string) string {
	if group == "" {
		return key
	}

	return group + "." + key
}

func qualify(group string, attrs []slog.Attr) []slog.Attr {
	if group == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: join(group, a.Key), Value: a.Value}
	}

	return out
}
