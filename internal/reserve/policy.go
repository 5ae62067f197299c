// Package reserve computes the minimum funds a stored record must keep.
package reserve

import (
	"context"
	"errors"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-petr/vaultbank/pkg/configpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var (
	// ErrNegativeSize indicates that the record size is below zero.
	ErrNegativeSize = errors.New("record size can not be negative")
	// ErrOutOfRange indicates that the reserved minimum does not fit into 64 bits.
	ErrOutOfRange = errors.New("reserved minimum is out of range")
)

var hundred = decimal.NewFromInt(100)

// Params holds the reserve policy parameters.
type Params struct {
	ByteRate         uint64 // funds per byte
	OverheadBytes    uint64 // bytes added to every record
	ThresholdPercent uint64 // share of the byte cost to keep, in percent
}

// Source provides the current reserve parameters.
type Source interface {
	Params(ctx context.Context) (Params, error)
}

// ViperSource keeps a snapshot of the parameters held by viper. The snapshot
// is replaced whenever viper reloads its watched config file, and every
// computation sees one whole snapshot.
type ViperSource struct {
	mu     sync.RWMutex
	params Params
}

// NewViperSource returns a Source backed by v. It must be called before
// v.WatchConfig, since it registers the reload callback and reads v.
func NewViperSource(v *viper.Viper) *ViperSource {
	s := &ViperSource{params: paramsFrom(v)}

	v.OnConfigChange(func(e fsnotify.Event) {
		s.set(paramsFrom(v))
	})

	return s
}

// Params returns the current snapshot.
func (s *ViperSource) Params(ctx context.Context) (Params, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.params, nil
}

func (s *ViperSource) set(p Params) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

func paramsFrom(v *viper.Viper) Params {
	return Params{
		ByteRate:         v.GetUint64(configpkg.ReserveByteRateKey),
		OverheadBytes:    v.GetUint64(configpkg.ReserveOverheadBytesKey),
		ThresholdPercent: v.GetUint64(configpkg.ReserveThresholdPercentKey),
	}
}

// RentPolicy charges a per byte rate for the record and its overhead.
type RentPolicy struct {
	source Source
}

// NewRentPolicy returns a policy using parameters from source.
func NewRentPolicy(source Source) *RentPolicy {
	return &RentPolicy{source: source}
}

// ReservedMinimum returns
// (OverheadBytes + recordSize) * ByteRate * ThresholdPercent / 100, rounded down.
func (p *RentPolicy) ReservedMinimum(ctx context.Context, recordSize int) (uint64, error) {
	if recordSize < 0 {
		return 0, ErrNegativeSize
	}

	params, err := p.source.Params(ctx)
	if err != nil {
		return 0, err
	}

	bytes := amountpkg.FromUint64(params.OverheadBytes).Add(decimal.NewFromInt(int64(recordSize)))

	cost := bytes.
		Mul(amountpkg.FromUint64(params.ByteRate)).
		Mul(amountpkg.FromUint64(params.ThresholdPercent))

	minimum, _ := cost.QuoRem(hundred, 0)

	reserved, err := amountpkg.ToUint64(minimum)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Interface("params", params).Msg("reserved minimum overflow")
		return 0, ErrOutOfRange
	}

	return reserved, nil
}
