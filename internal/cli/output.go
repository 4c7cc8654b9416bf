package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats selectable with --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Response is the standard envelope for structured output.
type Response struct {
	OK       bool       `json:"ok" yaml:"ok"`
	Data     any        `json:"data,omitempty" yaml:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code" yaml:"code"`
	Message    string `json:"message" yaml:"message"`
	Details    any    `json:"details,omitempty" yaml:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// reportedError is an error whose envelope has already been written. Execute
// exits non-zero without printing it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// printer writes command output in the selected format.
type printer struct {
	w      io.Writer
	format string
}

func (p *printer) structured() bool {
	return p.format == formatJSON || p.format == formatYAML
}

func (p *printer) emit(resp Response) error {
	switch p.format {
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
}

// success writes a successful envelope.
func (p *printer) success(data any, warnings []Warning) error {
	return p.emit(Response{OK: true, Data: data, Warnings: warnings})
}

// fail reports err. In structured mode it writes an error envelope and
// returns a reportedError; in text mode it returns err for Execute to print.
func (p *printer) fail(err error, details any, warnings []Warning) error {
	if !p.structured() {
		return err
	}
	code := errorCode(err)
	if emitErr := p.emit(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    err.Error(),
			Details:    details,
			Suggestion: suggestion(code),
		},
		Warnings: warnings,
	}); emitErr != nil {
		return fmt.Errorf("%w (and failed to write output: %v)", err, emitErr)
	}
	return &reportedError{err: err}
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	fmt.Fprintln(p.w, args...)
}
