package services

import (
	"io"

	tcmp3 "github.com/tcolgate/mp3"
)

// GetMP3Duration calcula la duración en segundos de un MP3 recorriendo sus
// frames. Para otros formatos de audio devolvemos 0 sin error.
func GetMP3Duration(r io.Reader) (float64, error) {
	var (
		dur     float64
		dec     = tcmp3.NewDecoder(r)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}
