package service

import (
	"regexp"
	"strconv"
	"strings"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/infrastructure/addresscodec"
	networkdefinition "balance_resolver/internal/infrastructure/network/definition"
	"balance_resolver/internal/pkg/metrics"
)

// addressPatterns is compiled from the network descriptors, one expression per network.
var addressPatterns = compileAddressPatterns(networkdefinition.NewDescriptorProvider().GetAllDescriptors()) //nolint:gochecknoglobals

func compileAddressPatterns(descriptors []entity.NetworkDescriptor) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(descriptors))
	for _, d := range descriptors {
		if d.Pattern == "" {
			continue
		}
		patterns[d.ID] = regexp.MustCompile(d.Pattern)
	}
	return patterns
}

// ValidateAddress format-checks address against networkID's pattern. Network ids are
// case-insensitive; networks without a pattern accept any address.
func ValidateAddress(address, networkID string) bool {
	re, ok := addressPatterns[strings.ToLower(strings.TrimSpace(networkID))]
	if !ok {
		return true
	}
	return re.MatchString(address)
}

// addressValidatorImpl implements port.AddressValidator.
type addressValidatorImpl struct {
	logger port.Logger
}

// NewAddressValidator creates a new instance of addressValidatorImpl.
func NewAddressValidator(l port.Logger) port.AddressValidator {
	return &addressValidatorImpl{logger: l}
}

// Validate implements port.AddressValidator. Strict mode only ever narrows the regex verdict.
func (v *addressValidatorImpl) Validate(address, networkID string, strict bool) bool {
	network := strings.ToLower(strings.TrimSpace(networkID))
	valid := ValidateAddress(address, network)
	mode := "regex"
	if valid && strict {
		mode = "strict"
		if err := addresscodec.Verify(address, network); err != nil {
			v.logger.Debug("Address rejected by codec", "network", network, "error", err)
			valid = false
		}
	}

	label := network
	if _, known := addressPatterns[network]; !known {
		label = "other"
	}
	metrics.AddressValidations.WithLabelValues(label, mode, strconv.FormatBool(valid)).Inc()
	return valid
}
