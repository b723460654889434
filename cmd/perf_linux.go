//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// measure runs fn, counting its CPU instructions when --perf is set. Without
// access to perf events fn still runs, only the count is skipped.
func measure(name string, fn func() error) (err error) {
	var (
		ran  bool
		fErr error
		pv   *perf.ProfileValue
	)
	if !viper.GetBool("perf") {
		return fn()
	}
	pv, err = perf.CPUInstructions(func() error {
		ran = true
		fErr = fn()
		return fErr
	})
	if !ran {
		log.WithField("solve", name).Warnf("perf events unavailable: %v", err)
		return fn()
	}
	if fErr != nil {
		return fErr
	}
	if err != nil {
		log.WithField("solve", name).Warnf("reading perf counters: %v", err)
		return nil
	}
	log.WithFields(log.Fields{"solve": name, "instructions": pv.Value}).Info("Perf counters")
	return nil
}
