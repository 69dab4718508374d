package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(r Report) error {
	if r.Dives == nil {
		r.Dives = []model.DiveLog{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.w.Write(append(data, '\n'))
	return err
}
