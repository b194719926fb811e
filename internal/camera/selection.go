package camera

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSelectionAborted is returned when the prompt input ends before a valid choice.
var ErrSelectionAborted = errors.New("camera selection aborted")

// Select lists devices on out and asks for a number in [1, len(devices)]
// until one is given. It returns the chosen device index.
func Select(in io.Reader, out io.Writer, devices []int) (int, error) {
	if len(devices) == 0 {
		return 0, errors.New("no devices to select from")
	}

	fmt.Fprintln(out, "Available cameras:")
	for i, index := range devices {
		fmt.Fprintf(out, "%d. Camera %d\n", i+1, index)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Select a camera (1-%d): ", len(devices))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("%w: %v", ErrSelectionAborted, err)
			}
			return 0, ErrSelectionAborted
		}

		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number.")
			continue
		}
		if choice < 1 || choice > len(devices) {
			continue
		}
		return devices[choice-1], nil
	}
}
