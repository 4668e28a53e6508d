package cli

import (
	"context"
	"fmt"
	"strings"
)

// Stats prints the counters collected during this session.
func (a *App) Stats(_ context.Context, _ []string) error {
	if a.registry == nil {
		fmt.Fprintln(a.out, "No activity yet")
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	printed := 0
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			c := m.GetCounter()
			if c == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			fmt.Fprintf(a.out, "%s{%s} %.0f\n", mf.GetName(), strings.Join(labels, ","), c.GetValue())
			printed++
		}
	}
	if printed == 0 {
		fmt.Fprintln(a.out, "No activity yet")
	}
	return nil
}
