package cli

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/pipeline"
	"github.com/mwoelke/boxwrap/pkg/units"
)

// wrapsCommand creates the wraps command for building the two wrap
// images from a painted template.
func (c *CLI) wrapsCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}
	params := geometry.DefaultParams()

	cmd := &cobra.Command{
		Use:   "wraps TEMPLATE.png",
		Short: "Build the top and bottom wrap images from a painted template",
		Long: `Build the top and bottom wrap images from a painted template.

The wraps are what gets glued around the two cardboard box halves. Each
wrap centers one face, folds the neighboring faces around it with the
cardboard thickness inserted at every fold, and adds glue flaps and
fold marks. The template must have exactly the pixel size the
dimensions dictate; build it with 'boxwrap template'.

Dimensions are the same outer measurements the template was built from.
When the dimension flags are missing and the session is interactive, a
form asks for them instead. The wrap parameters fall back to the [wrap]
section of the config file where no flag is given.

Writes <dir>/wrap-top.png and <dir>/wrap-bottom.png with guide
sidecars.

Examples:
  boxwrap wraps template.png -l 75 -w 100 --height 104
  boxwrap wraps template.png -l 75 -w 100 --height 104 -t 1.5 -o art/
  boxwrap wraps template.png                        # interactive form`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyWrapDefaults(cmd, &opts)
			ok, err := c.promptWrapDims(cmd, &opts)
			if err != nil || !ok {
				return err
			}
			return c.runWraps(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().Float64VarP(&opts.Length, "length", "l", 0, "box length in mm")
	cmd.Flags().Float64VarP(&opts.Width, "width", "w", 0, "box width in mm")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "box height in mm")
	cmd.Flags().Float64VarP(&opts.Thickness, "thickness", "t", defaultThicknessMM, "cardboard thickness in mm")
	cmd.Flags().Float64Var(&opts.FlapSize, "flap-size", params.FlapSize, "glue flap width in mm")
	cmd.Flags().Float64Var(&opts.InsideSize, "inside-size", params.InsideSize, "inside overlap depth in mm")
	cmd.Flags().Float64Var(&opts.MarkSize, "mark-size", params.MarkSize, "fold mark length in mm")
	cmd.Flags().Float64Var(&opts.MarkDistance, "mark-distance", params.MarkDistance, "fold mark distance from the content in mm")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")

	return cmd
}

// promptWrapDims runs the dimension form when flags are missing on an
// interactive terminal. It reports false when the user canceled.
func (c *CLI) promptWrapDims(cmd *cobra.Command, opts *pipeline.Options) (bool, error) {
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
		prefillField("Thickness", opts.Thickness, defaultThicknessMM),
	)
	if err != nil || !ok {
		if err == nil {
			printDetail("Canceled")
		}
		return false, err
	}
	opts.Length, opts.Width, opts.Height, opts.Thickness = vals[0], vals[1], vals[2], vals[3]
	return true, nil
}

// runWraps loads the template image, builds both wraps, and writes
// them to the output directory.
func (c *CLI) runWraps(ctx context.Context, templatePath string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)

	img, err := imaging.Open(templatePath)
	if err != nil {
		return fmt.Errorf("open template %s: %w", templatePath, err)
	}
	logger.Debug("loaded template", "path", templatePath, "size", img.Bounds().Size())

	// Wraps are never cached, so the runner gets none.
	runner, err := c.newRunner(output, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Building wraps...")
	spinner.Start()
	res, err := runner.Wraps(ctx, img, opts)
	if err != nil {
		spinner.StopWithError("Wrap build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Wraps complete")
	for _, ref := range res.Refs {
		printFile(ref)
	}
	size := res.Artifacts[0].Image.Bounds().Size()
	printStats(size.X, size.Y, len(res.Artifacts[0].Guides), false)
	printNewline()
	printDetail("Print at %d dpi without scaling", units.DPI)

	return nil
}
