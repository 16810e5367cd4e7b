// Package tui is the terminal front end for 2048.
//
// MenuModel picks a variant and shows best scores, GameModel runs one
// variant on a fixed tick, and ScoreboardModel lists finished runs. Keys
// and mouse drags become core actions that queue up and reach the game
// one per tick. Finished runs and best scores go to the storage package.
//
// SSHServer serves the same models over SSH through SessionModel, one
// program per connection with its own game instances.
package tui
