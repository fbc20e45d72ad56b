package config

import (
	"fmt"
	"log/slog"

	"mot-retarget/internal/axis"
	"mot-retarget/internal/retarget"
)

// RetargetOptions validates the rule section and converts it for the
// retargeter. A malformed directive or a scale/offset that is not three
// values is an error.
func (c *Config) RetargetOptions(log *slog.Logger) (retarget.Options, error) {
	opts := retarget.DefaultOptions()
	opts.Logger = log
	opts.Workers = c.JointWorkers

	if c.Directive != "" {
		d, err := axis.Parse(c.Directive)
		if err != nil {
			return opts, fmt.Errorf("config: directive: %w", err)
		}
		opts.Directive = d
	}
	if c.Scale != nil {
		if len(c.Scale) != 3 {
			return opts, fmt.Errorf("config: scale needs 3 values, got %d", len(c.Scale))
		}
		copy(opts.Conversion.Scale[:], c.Scale)
	}
	if c.Offset != nil {
		if len(c.Offset) != 3 {
			return opts, fmt.Errorf("config: offset needs 3 values, got %d", len(c.Offset))
		}
		copy(opts.Conversion.Offset[:], c.Offset)
	}
	if c.NameRules != nil {
		opts.Rules = make([]retarget.NameRule, len(c.NameRules))
		for i, r := range c.NameRules {
			opts.Rules[i] = retarget.NameRule{Contains: r.Contains, Bump: r.Bump}
		}
	}
	if c.ExcludeSlots != nil {
		opts.Exclude = append([]int(nil), c.ExcludeSlots...)
	}
	return opts, nil
}
