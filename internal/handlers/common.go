// common.go
//
// The CoachDesk client onboarding data service.
// Copyright (c) 2026 CoachDesk GmbH <engineering@coachdesk.io> (https://www.coachdesk.io)
//
// This file is part of onboard.
// onboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// onboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with onboard.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"strings"

	"github.com/coachdesk/onboard/internal/middleware"
	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/storage"
	"github.com/coachdesk/onboard/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// sessionOrReply extracts the authenticated caller, replying 401 when absent.
// On false the error response has already been written and handlers return it
// immediately.
func sessionOrReply(c *fiber.Ctx) (middleware.Session, bool, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return middleware.Session{}, false, utils.ErrorResponse(c, "Missing session", fiber.StatusUnauthorized, "onboard.session")
	}
	return s, true, nil
}

// isStaff reports whether the session may act across clients.
func isStaff(s middleware.Session) bool {
	return s.Role == storage.RoleCoach || s.Role == storage.RoleAdmin
}

// parseStatuses extracts submission status filters from query parameters,
// supporting both multiple 'statuses' keys and comma-separated values.
func parseStatuses(c *fiber.Ctx) []models.SubmissionStatus {
	statusMap := make(map[models.SubmissionStatus]struct{})

	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		if string(key) == "statuses" {
			vals := strings.Split(string(value), ",")
			for _, v := range vals {
				v = strings.TrimSpace(v)
				if v != "" {
					statusMap[models.SubmissionStatus(v)] = struct{}{}
				}
			}
		}
	}

	if len(statusMap) == 0 {
		return nil
	}

	statuses := make([]models.SubmissionStatus, 0, len(statusMap))
	for k := range statusMap {
		statuses = append(statuses, k)
	}

	return statuses
}

// filterByStatus narrows a submission list to the requested statuses. An
// empty filter keeps everything.
func filterByStatus(subs []models.FormSubmission, statuses []models.SubmissionStatus) []models.FormSubmission {
	if len(statuses) == 0 {
		return subs
	}
	keep := make([]models.FormSubmission, 0, len(subs))
	for _, sub := range subs {
		for _, st := range statuses {
			if sub.Status == st {
				keep = append(keep, sub)
				break
			}
		}
	}
	return keep
}
