// Command fakenews-detect classifies text from the command line with the same artifacts as the API
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"fakenews/internal/core/version"
	"fakenews/internal/modkit"
	"fakenews/internal/platform/config"
	"fakenews/internal/platform/logger"
	str "fakenews/internal/platform/strings"

	"fakenews/internal/services/detect/domain"
	detectmod "fakenews/internal/services/detect/module"
)

// samples are the two console test headlines
var samples = []string{
	"U.S. stocks rally as inflation concerns ease and technology sector posts strong gains.",
	"ALIENS DISCOVERED on Mars, Government is HIDING the truth! Secret message decoded in crop circles.",
}

func main() {
	_ = godotenv.Load()
	logger.Init(logger.FromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "fakenews-detect:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("fakenews-detect", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		variant  = fs.String("variant", "", "pipeline to load: sequence or tfidf (default CORE_DETECT_VARIANT)")
		useDemo  = fs.Bool("samples", false, "classify the two built-in sample headlines")
		showVer  = fs.Bool("version", false, "print build info and exit")
		previewN = fs.Int("preview", 80, "runes of cleaned text to print, 0 for all")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVer {
		_, err := fmt.Fprintln(stdout, version.Info().String())
		return err
	}

	// the flag feeds CORE_DETECT_VARIANT so the module reads its own config
	if *variant != "" {
		if err := os.Setenv("CORE_DETECT_VARIANT", *variant); err != nil {
			return err
		}
	}

	m := detectmod.New(ctx, modkit.Deps{Cfg: config.New()})
	eng := m.Engine()
	if !eng.Ready() {
		return eng.Err()
	}
	info := eng.Info()
	fmt.Fprintf(stdout, "variant: %s  vocab: %d\n", info.Variant, info.VocabSize)

	classify := func(text string) error {
		out, err := eng.Predict(ctx, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\ntext:    %s\n", str.Preview(text, *previewN))
		fmt.Fprintf(stdout, "result:  %s\n", describe(out))
		if out.Short {
			return nil
		}
		fmt.Fprintf(stdout, "cleaned: %s\n", str.Preview(out.Cleaned, *previewN))
		if out.Hint.Script != "" {
			fmt.Fprintf(stdout, "script:  %s %s\n", out.Hint.Script, out.Hint.Lang)
		}
		return nil
	}

	inputs := fs.Args()
	if *useDemo {
		inputs = append(append([]string{}, samples...), inputs...)
	}
	if len(inputs) > 0 {
		for _, text := range inputs {
			if err := classify(text); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := classify(line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// describe renders the label the way the term-weight pipeline names it, for either variant
func describe(out domain.Outcome) string {
	label := out.Response.Label
	if label == "" {
		label = "Reliable"
		if out.Response.Prediction == 1 {
			label = "Unreliable"
		}
	}
	if p := out.Response.Probability; p != nil {
		return fmt.Sprintf("%s (prediction %d, p=%.4f)", label, out.Response.Prediction, *p)
	}
	return fmt.Sprintf("%s (prediction %d)", label, out.Response.Prediction)
}
