package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MrEthical07/passy"
)

// runInteractive asks for a policy on o.in, then prints the preview and the
// generated passwords.
func runInteractive(ctx context.Context, o *rootOptions) error {
	scanner := bufio.NewScanner(o.in)
	def := passy.DefaultPolicy()
	p := def
	count := 1

	fmt.Fprintln(o.out, "=== passy (interactive mode) ===")
	fmt.Fprintln(o.out)

	p.Length = askInt(scanner, o, "Password length", def.Length)
	p.UseLower = askYesNo(scanner, o, "Include lowercase letters?", def.UseLower)
	p.UseUpper = askYesNo(scanner, o, "Include uppercase letters?", def.UseUpper)
	p.UseDigits = askYesNo(scanner, o, "Include digits (0-9)?", def.UseDigits)
	p.UseSymbols = askYesNo(scanner, o, "Include symbols?", def.UseSymbols)
	p.AvoidAmbiguous = askYesNo(scanner, o, "Avoid look-alike characters?", def.AvoidAmbiguous)
	count = min(askInt(scanner, o, "How many passwords?", count), maxCount)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	engine, err := o.newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	preview := engine.EstimatePolicyStrength(ctx, p)
	fmt.Fprintln(o.out)
	fmt.Fprintf(o.out, "Expected strength: %s\n\n", preview.Label)

	for range count {
		fmt.Fprintln(o.out, engine.GeneratePassword(ctx, p))
	}
	return nil
}

func askInt(s *bufio.Scanner, o *rootOptions, question string, def int) int {
	fmt.Fprintf(o.out, "%s [%d]: ", question, def)
	if !s.Scan() {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s.Text()))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func askYesNo(s *bufio.Scanner, o *rootOptions, question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(o.out, "%s [%s]: ", question, hint)
	if !s.Scan() {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(s.Text())) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}
