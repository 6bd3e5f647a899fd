package resolver

import (
	"fmt"
	"io"
	"strconv"
	"twitchlink/app/service/stream"
	"twitchlink/app/service/vod"
	"twitchlink/pkg/hls"
)

// writeVOD and writeStream echo the identifier as the user typed it.

func writeVOD(w io.Writer, identifier string, result *vod.Result) error {
	if _, err := fmt.Fprintf(w, "ID: %s\n", identifier); err != nil {
		return err
	}

	if !result.Found() {
		_, err := fmt.Fprintln(w, "No VOD link found")
		return err
	}

	for _, link := range result.Links {
		if _, err := fmt.Fprintf(w, "VOD link: %s\n", link); err != nil {
			return err
		}
	}
	return nil
}

func writeStream(w io.Writer, identifier string, result *stream.Result) error {
	if _, err := fmt.Fprintf(w, "ID: %s\n", identifier); err != nil {
		return err
	}

	for _, v := range result.Variants {
		label := variantLabel(v)

		var err error
		if label == "" {
			_, err = fmt.Fprintln(w, v.URL)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", label, v.URL)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// variantLabel appends "[WxH@fps]" to the playlist label when the stream
// info carried a resolution.
func variantLabel(v hls.Variant) string {
	if v.Resolution == "" {
		return v.Label
	}

	detail := v.Resolution
	if v.FrameRate > 0 {
		detail += "@" + strconv.FormatFloat(v.FrameRate, 'f', -1, 64)
	}

	if v.Label == "" {
		return "[" + detail + "]"
	}
	return v.Label + " [" + detail + "]"
}
