// common.go
//
// A scalable, high performance drop-in replacement for the agri-monitor nextjs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fieldwise.
// fieldwise is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fieldwise is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fieldwise.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// dateLayouts are the calendar-day shapes the frontend submits. The nextjs
// service accepted anything new Date() could parse; these two cover what it
// actually sent.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseCalendarDate parses a submitted date into a UTC calendar day,
// truncating any time-of-day component.
func parseCalendarDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q; expected YYYY-MM-DD", value)
}

// parseQueryID parses a required numeric query parameter.
func parseQueryID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// getUserID reads the user id the auth middleware stored in context.
func getUserID(c *fiber.Ctx) (uint64, error) {
	userID, ok := c.Locals("userID").(uint64)
	if !ok || userID == 0 {
		return 0, fmt.Errorf("no authenticated user in context")
	}
	return userID, nil
}
