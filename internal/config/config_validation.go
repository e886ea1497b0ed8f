// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.PasswordHashKey == "" {
		return fmt.Errorf("%w: password hash key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and a positive token duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.BodyLimit <= 0 {
		return fmt.Errorf("%w: address, request timeout and body limit are required", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if err := cfg.Admission.validate(); err != nil {
		return err
	}

	if cfg.Workers.SweepInterval <= 0 {
		return fmt.Errorf("%w: sweep interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (a *Admission) validate() error {
	if a.Window <= 0 || a.Limit <= 0 {
		return fmt.Errorf("%w: window and limit must be positive", ErrInvalidAdmissionConfigs)
	}
	if a.DelayAfter < 0 || a.DelayStep < 0 || a.MaxDelay < 0 {
		return fmt.Errorf("%w: delay settings must not be negative", ErrInvalidAdmissionConfigs)
	}

	for _, proxy := range a.TrustedProxies {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("%w: trusted proxy %q is neither an IP nor a CIDR", ErrInvalidAdmissionConfigs, proxy)
		}
	}

	return nil
}
