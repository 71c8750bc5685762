package client

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"donations/contract"
)

const programDataPrefix = "Program data: "

// Events groups decoded events of one transaction.
type Events struct {
	Donations      []*contract.DonationEvent
	ProfileUpdates []*contract.ProfileUpdatedEvent
}

// ParseEvents decodes every "Program data:" log line of the program. Lines from
// other programs or with unknown tags are skipped.
func ParseEvents(logs []string) (*Events, error) {
	out := &Events{}
	for _, line := range logs {
		payload, ok := strings.CutPrefix(line, programDataPrefix)
		if !ok {
			continue
		}
		for _, chunk := range strings.Fields(payload) {
			data, err := base64.StdEncoding.DecodeString(chunk)
			if err != nil {
				return nil, fmt.Errorf("decode program data: %w", err)
			}
			ev, err := contract.DecodeEvent(data)
			if errors.Is(err, contract.ErrUnknownEvent) {
				continue
			}
			if err != nil {
				return nil, err
			}
			switch e := ev.(type) {
			case *contract.DonationEvent:
				out.Donations = append(out.Donations, e)
			case *contract.ProfileUpdatedEvent:
				out.ProfileUpdates = append(out.ProfileUpdates, e)
			}
		}
	}
	return out, nil
}
