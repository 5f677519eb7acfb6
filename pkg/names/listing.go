package names

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/srodi/hog/pkg/types"
)

// listingCommandColumn is the index of COMMAND in `ps ax` output
// (PID TT STAT TIME COMMAND).
const listingCommandColumn = 4

const maxListingLine = 1 << 20

// ParseListing reads `ps ax` style output and resolves every row's command
// line. Lines before the PID header are ignored.
func ParseListing(r io.Reader, resolver *Resolver) (types.Names, error) {
	names := make(types.Names)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxListingLine)

	seenHeader := false
	for scanner.Scan() {
		line := scanner.Text()
		if !seenHeader {
			seenHeader = strings.HasPrefix(strings.TrimLeft(line, " \t"), "PID")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		longName := ""
		if len(fields) > listingCommandColumn {
			longName = strings.Join(fields[listingCommandColumn:], " ")
		}
		pid := types.PID(fields[0])
		names[pid] = types.NameEntry{
			PID:       pid,
			LongName:  longName,
			ShortName: resolver.Resolve(longName),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading process listing: %w", err)
	}
	return names, nil
}
