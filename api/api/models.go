/* models.go
 * This file contain the errors and helper types that are used by api consumers
 * Authors: Zachary Bower
 */

package api

import "errors"

// Errors returned by the api. The bot and web packages map these to user facing messages
var (
	ErrNoTournament      = errors.New("the tournament has not been created yet")
	ErrNoBracket         = errors.New("no bracket found, create one with $new")
	ErrSubmissionClosed  = errors.New("the submission deadline has passed")
	ErrBracketSubmitted  = errors.New("bracket has already been submitted and can no longer be changed")
	ErrIncompleteBracket = errors.New("bracket is incomplete")
	ErrGameNotReady      = errors.New("both teams for this game are not known yet")
	ErrUnknownTeam       = errors.New("team is not playing in this game")
	ErrFinalRound        = errors.New("the tournament is already in its final round")
)
