package img

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sleuthling/sleuthling/internal/ai"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "img",
	Title: "Image operations",
}

func init() {
	Generate.Flags().String("out", "./out.png", "path to generated image file")
	Generate.Flags().String("size", openai.CreateImageSize1024x1024, "image size, e.g. 1024x1024 or 1792x1024")
}

var Generate = &cobra.Command{
	Use:     "img-gen [prompt]",
	GroupID: "img",
	Short:   "Generate image",
	Long:    `Generates an image with Dall-E, handy for testing illustration prompts`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		client, err := ai.NewClient(os.LookupEnv, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "AI client error: %v\n", err)
			return
		}

		prompt := strings.Join(args, " ")
		size, _ := cmd.Flags().GetString("size")

		imgBytes, err := client.GenerateImage(ctx, prompt, size)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Image creation error: %v\n", err)
			return
		}

		imgData, err := png.Decode(bytes.NewReader(imgBytes))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "PNG decode error: %v\n", err)
			return
		}

		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid out flag: %v\n", err)
			return
		}
		file, err := os.Create(outPath)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "File creation error: %v\n", err)
			return
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)

		if err := png.Encode(file, imgData); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "PNG encode error: %v\n", err)
			return
		}

		fmt.Printf("The image was saved as %s\n", outPath)
	},
}
