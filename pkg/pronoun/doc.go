// Package pronoun renders participant markers in already formatted text.
//
// Messages refer to people through "@N<tag>" markers. Each participant
// carries a Table that maps tags to words or suffixes, so one catalog
// entry serves every pronoun set:
//
//	msg := "The goblin@1s slash@1$$ @2me with @1my blade@1s!"
//
//	pronoun.Render(msg,
//		pronoun.Participant{Name: "Grak", Table: pronoun.SheHer()},
//		pronoun.Participant{Table: pronoun.You()},
//	)
//	// The goblin slashes you with her blade!
//
// Rendering runs after catalog formatting; Format does both for a bundle
// key. Tags are matched without regard to case and the longest known tag
// wins.
package pronoun
