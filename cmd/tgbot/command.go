package main

import (
	"fmt"
	"strconv"
	"strings"

	"DuctSizer/internal/calc/duct"
	"DuctSizer/internal/view"
)

const usage = `HVAC Duct Sizer

/duct <cfm> <velocity> [round | rect <aspect>] [friction]

Examples:
/duct 1200 900
/duct 2000 1000 rect 2
/duct 1500 800 round 0.1`

// reply answers one chat message. Messages that are not commands get no reply.
func reply(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}
	// "/duct@SomeBot" in groups
	cmd, _, _ := strings.Cut(fields[0], "@")
	switch strings.ToLower(cmd) {
	case "/start", "/help":
		return usage, true
	case "/duct":
		in, err := parseDuct(fields[1:])
		if err != nil {
			return err.Error() + "\n\n" + usage, true
		}
		res, err := duct.Calculate(in)
		if err != nil {
			return err.Error(), true
		}
		return view.Text(view.Build(res)), true
	}
	return "Unknown command.\n\n" + usage, true
}

func parseDuct(args []string) (duct.Input, error) {
	in := duct.DefaultInput()
	if len(args) < 2 {
		return in, fmt.Errorf("need airflow and velocity")
	}
	var err error
	if in.CFM, err = strconv.ParseFloat(args[0], 64); err != nil {
		return in, fmt.Errorf("bad airflow %q", args[0])
	}
	if in.VelocityFPM, err = strconv.ParseFloat(args[1], 64); err != nil {
		return in, fmt.Errorf("bad velocity %q", args[1])
	}
	rest := args[2:]
	if len(rest) > 0 {
		if shape, err := duct.ParseShape(rest[0]); err == nil {
			in.Shape = shape
			rest = rest[1:]
			if shape == duct.Rectangular && len(rest) > 0 {
				if in.AspectRatio, err = strconv.ParseFloat(rest[0], 64); err != nil {
					return in, fmt.Errorf("bad aspect ratio %q", rest[0])
				}
				rest = rest[1:]
			}
		}
	}
	if len(rest) > 0 {
		if in.FrictionRate, err = strconv.ParseFloat(rest[0], 64); err != nil {
			return in, fmt.Errorf("bad friction rate %q", rest[0])
		}
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return in, fmt.Errorf("unexpected %q", strings.Join(rest, " "))
	}
	return in, nil
}
