// fall-detector - detect falls in video footage using motion heuristics
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package throttle

import (
	"errors"
	"time"
)

// ThrottlerConfig limits how often alerts go out. Up to BucketSize alerts
// can be sent back to back, after which one more is allowed every
// RefillInterval.
type ThrottlerConfig struct {
	Activate       bool          `yaml:"activate"`
	BucketSize     int64         `yaml:"bucket-size"`
	RefillInterval time.Duration `yaml:"refill-interval"`
}

func DefaultThrottlerConfig() ThrottlerConfig {
	return ThrottlerConfig{
		Activate:       true,
		BucketSize:     3,
		RefillInterval: 10 * time.Minute,
	}
}

func (conf *ThrottlerConfig) Validate() error {
	if !conf.Activate {
		return nil
	}
	if conf.BucketSize < 1 {
		return errors.New("throttler bucket-size should be positive")
	}
	if conf.RefillInterval <= 0 {
		return errors.New("throttler refill-interval should be positive")
	}
	return nil
}
