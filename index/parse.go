// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"math"
	"unicode"
)

// ParseInt parses the leading integer of s. Leading whitespace and a single
// sign are allowed and any characters after the digits are ignored, so
// "12abc" parses as 12. ok is false if s does not start with a number.
// Values beyond the range of int saturate.
func ParseInt(s string) (n int, ok bool) {
	rs := []rune(s)
	i := 0
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}

	neg := false
	if i < len(rs) && (rs[i] == '+' || rs[i] == '-') {
		neg = rs[i] == '-'
		i++
	}

	saturated := false
	start := i
	for ; i < len(rs) && '0' <= rs[i] && rs[i] <= '9'; i++ {
		d := int(rs[i] - '0')
		if saturated {
			continue
		}
		if n > (math.MaxInt-d)/10 {
			saturated = true
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}
	if i == start {
		return 0, false
	}

	if neg {
		if saturated {
			return math.MinInt, true
		}
		return -n, true
	}
	return n, true
}
