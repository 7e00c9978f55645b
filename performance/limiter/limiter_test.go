// This file is part of Gopher81.
//
// Gopher81 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher81 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher81.  If not, see <https://www.gnu.org/licenses/>.

package limiter_test

import (
	"testing"
	"time"

	"github.com/gopher81/gopher81/performance/limiter"
	"github.com/gopher81/gopher81/test"
)

func TestLimiter(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectFailure(t, err)

	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()
	test.ExpectEquality(t, lim.Limit(), float32(100))

	start := time.Now()
	for range 5 {
		lim.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) >= 40*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	test.ExpectSuccess(t, lim.HasWaited())

	test.ExpectFailure(t, lim.SetLimit(-1))
	test.ExpectEquality(t, lim.Limit(), float32(100))
	test.ExpectSuccess(t, lim.SetLimit(50))
	test.ExpectEquality(t, lim.Limit(), float32(50))
}
