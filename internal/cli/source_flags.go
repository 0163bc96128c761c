package cli

import (
	"fmt"

	"github.com/fastbillx/checkout/internal/detect"
	"github.com/spf13/cobra"
)

// sourceFlags are the detection-source options shared by run and watch.
type sourceFlags struct {
	script string
	replay string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.script, "script", "", "YAML detection script to play back")
	cmd.Flags().StringVar(&f.replay, "replay", "", "JSONL detection recording to replay")
}

// open resolves the flags to a detection source. With neither flag set the
// built-in demo script plays. The returned closer is a no-op for scripts.
func (f *sourceFlags) open() (detect.Source, func() error, error) {
	noop := func() error { return nil }

	switch {
	case f.script != "" && f.replay != "":
		return nil, nil, fmt.Errorf("--script and --replay are mutually exclusive")
	case f.script != "":
		src, err := detect.LoadScript(f.script)
		if err != nil {
			return nil, nil, err
		}
		return src, noop, nil
	case f.replay != "":
		src, err := detect.OpenReplay(f.replay)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	default:
		return detect.DemoScript(), noop, nil
	}
}
