package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwoelke/boxwrap/pkg/pipeline"
)

// templateCommand creates the template command for building the
// paintable template sheet.
func (c *CLI) templateCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Build the printable template sheet for a box",
		Long: `Build the printable template sheet for a box.

The template lays the six box faces out as a cross: a horizontal band
of the left, front, right, and back faces, with the top and bottom
faces above and below the front. Faces are labeled, the sheet carries
guides at every band boundary, and the area outside the cross stays
transparent.

Dimensions are outer measurements of the assembled box in millimeters.
When the dimension flags are missing and the session is interactive, a
form asks for them instead.

The sheet is written as <dir>/template.png with a matching
template.guides.json sidecar listing the guide offsets. Results are
cached locally; use --refresh to force a rebuild.

Examples:
  boxwrap template -l 75 -w 100 --height 104
  boxwrap template -l 75 -w 100 --height 104 -o art/
  boxwrap template                                  # interactive form`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := c.promptTemplateDims(cmd, &opts)
			if err != nil || !ok {
				return err
			}
			return c.runTemplate(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().Float64VarP(&opts.Length, "length", "l", 0, "box length in mm")
	cmd.Flags().Float64VarP(&opts.Width, "width", "w", 0, "box width in mm")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "box height in mm")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even when cached")

	return cmd
}

// promptTemplateDims runs the dimension form when flags are missing on
// an interactive terminal. It reports false when the user canceled.
func (c *CLI) promptTemplateDims(cmd *cobra.Command, opts *pipeline.Options) (bool, error) {
	flags := cmd.Flags()
	if flags.Changed("length") && flags.Changed("width") && flags.Changed("height") {
		return true, nil
	}
	if !isInteractive() {
		return true, nil // validation reports the missing values
	}

	vals, ok, err := runDimensionForm("Box Dimensions",
		prefillField("Length", opts.Length, defaultLengthMM),
		prefillField("Width", opts.Width, defaultWidthMM),
		prefillField("Height", opts.Height, defaultHeightMM),
	)
	if err != nil || !ok {
		if err == nil {
			printDetail("Canceled")
		}
		return false, err
	}
	opts.Length, opts.Width, opts.Height = vals[0], vals[1], vals[2]
	return true, nil
}

// runTemplate builds the template and writes it to the output directory.
func (c *CLI) runTemplate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(output, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Building template...")
	spinner.Start()
	res, err := runner.Template(ctx, opts)
	if err != nil {
		spinner.StopWithError("Template build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	art := res.Artifacts[0]
	size := art.Image.Bounds().Size()

	printSuccess("Template complete")
	printFile(res.Refs[0])
	printStats(size.X, size.Y, len(art.Guides), res.CacheInfo.TemplateHit)
	printNewline()
	printNextStep("Paint the faces, then build the wraps",
		fmt.Sprintf("%s wraps %s -l %g -w %g --height %g",
			appName, res.Refs[0], opts.Length, opts.Width, opts.Height))

	return nil
}
