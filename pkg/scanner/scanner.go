package scanner

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// AccessPoint is one WiFi network observed during a scan.
type AccessPoint struct {
	SSID           string
	BSSID          string
	SignalStrength float64
}

// Scanner returns the radio networks visible at the current moment.
type Scanner interface {
	Scan(ctx context.Context) ([]AccessPoint, error)
}

// NmcliScanner lists nearby WiFi access points using nmcli.
type NmcliScanner struct{}

// NewNmcliScanner creates a new NmcliScanner instance.
func NewNmcliScanner() *NmcliScanner {
	return &NmcliScanner{}
}

// Scan runs nmcli and parses the visible access points from its terse output.
func (n *NmcliScanner) Scan(ctx context.Context) ([]AccessPoint, error) {
	// Verify nmcli is available
	if _, err := exec.LookPath("nmcli"); err != nil {
		return nil, fmt.Errorf("nmcli not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "nmcli", "-t", "-f", "SSID,BSSID,SIGNAL", "dev", "wifi", "list")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run nmcli: %w", err)
	}

	accessPoints, err := parseNmcliOutput(string(output))
	if err != nil {
		return nil, err
	}

	return accessPoints, nil
}

// parseNmcliOutput parses nmcli terse output, one access point per line.
// In terse mode nmcli escapes the colons inside BSSID values with a backslash.
func parseNmcliOutput(output string) ([]AccessPoint, error) {
	var accessPoints []AccessPoint

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := splitTerseFields(scanner.Text())
		if len(fields) != 3 {
			continue
		}

		ssid := strings.TrimSpace(fields[0])
		bssid := strings.TrimSpace(fields[1])
		if !IsValidMAC(bssid) {
			continue
		}
		signal, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			continue
		}

		accessPoints = append(accessPoints, AccessPoint{
			SSID:           ssid,
			BSSID:          bssid,
			SignalStrength: float64(signal),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan nmcli output: %w", err)
	}

	return accessPoints, nil
}

// splitTerseFields splits an nmcli terse line on unescaped colons and
// unescapes the "\:" sequences inside each field.
func splitTerseFields(line string) []string {
	var fields []string
	var current strings.Builder

	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// IsValidMAC checks if the MAC address is in a valid format (e.g., "00:14:22:01:23:45").
func IsValidMAC(mac string) bool {
	parts := strings.Split(mac, ":")
	if len(parts) != 6 {
		return false
	}
	for _, part := range parts {
		if len(part) != 2 {
			return false
		}
		if _, err := strconv.ParseInt(part, 16, 16); err != nil {
			return false
		}
	}
	return true
}
