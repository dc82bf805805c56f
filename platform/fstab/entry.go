package fstab

import (
	"fmt"
	"strconv"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

// Entry is one active line of /etc/fstab.
type Entry struct {
	UUID       string
	MountPoint string
	Type       string
	Options    string
	Dump       int
	Pass       int
}

func (e Entry) String() string {
	return fmt.Sprintf("UUID=%s %s %s %s %d %d", e.UUID, e.MountPoint, e.Type, e.Options, e.Dump, e.Pass)
}

// ParseEntry parses an active fstab line. Comment and blank lines are not
// entries; callers filter those out first.
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Entry{}, bosherr.Errorf("Malformed fstab line `%s'", line)
	}

	entry := Entry{
		UUID:       strings.TrimPrefix(fields[0], "UUID="),
		MountPoint: fields[1],
		Type:       fields[2],
		Options:    fields[3],
	}

	if len(fields) > 4 {
		dump, err := strconv.Atoi(fields[4])
		if err != nil {
			return Entry{}, bosherr.WrapErrorf(err, "Parsing dump flag of fstab line `%s'", line)
		}
		entry.Dump = dump
	}

	if len(fields) > 5 {
		pass, err := strconv.Atoi(fields[5])
		if err != nil {
			return Entry{}, bosherr.WrapErrorf(err, "Parsing pass number of fstab line `%s'", line)
		}
		entry.Pass = pass
	}

	return entry, nil
}

func isActiveLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}
