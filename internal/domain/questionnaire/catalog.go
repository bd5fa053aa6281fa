package questionnaire

// catalog is the static question set, grouped by category. Option weights
// are carried as catalog data; scoring uses the question-level weight.
var catalog = map[Category][]Question{
	CategoryPersonality: {
		{
			ID:     "social_energy",
			Prompt: "How do you recharge your social battery?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "extrovert", Label: "I love big groups and parties", Weight: 1.0},
				{Value: "ambivert", Label: "Mix of both - depends on the day", Weight: 0.8},
				{Value: "introvert", Label: "Small groups or one-on-one time", Weight: 0.6},
				{Value: "selective", Label: "Only with close friends", Weight: 0.4},
			},
		},
		{
			ID:     "humor_style",
			Prompt: "What makes you laugh the most?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "sarcastic", Label: "Dry humor and sarcasm", Weight: 1.0},
				{Value: "silly", Label: "Goofy jokes and memes", Weight: 1.0},
				{Value: "witty", Label: "Clever wordplay and puns", Weight: 1.0},
				{Value: "wholesome", Label: "Light-hearted and positive humor", Weight: 1.0},
			},
		},
		{
			ID:     "decision_making",
			Prompt: "When making plans, you prefer to:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "planner", Label: "Plan everything in advance", Weight: 1.0},
				{Value: "flexible", Label: "Go with the flow", Weight: 1.0},
				{Value: "collaborative", Label: "Decide together in the moment", Weight: 1.0},
			},
		},
	},

	CategoryValues: {
		{
			ID:     "kindness_priority",
			Prompt: "What's most important to you in a prom date?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "kindness", Label: "Kindness and respect", Weight: 2.0},
				{Value: "fun", Label: "Fun and good vibes", Weight: 1.5},
				{Value: "communication", Label: "Good communication", Weight: 1.8},
				{Value: "shared_interests", Label: "Shared interests", Weight: 1.2},
			},
		},
		{
			ID:      "respect_boundaries",
			Prompt:  "How important is it that your date respects your boundaries?",
			Type:    Slider,
			Min:     1,
			Max:     5,
			Default: 5,
		},
		{
			ID:     "inclusivity",
			Prompt: "I believe everyone should feel welcome at prom, regardless of:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "background", Label: "Background or identity", Weight: 1.5},
				{Value: "friend_group", Label: "Friend group or popularity", Weight: 1.3},
				{Value: "style", Label: "Style or interests", Weight: 1.0},
			},
		},
	},

	CategoryPromExpectations: {
		{
			ID:     "prom_style",
			Prompt: "What's your ideal prom night?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "romantic", Label: "Romantic and special", Weight: 1.5},
				{Value: "fun_friends", Label: "Fun with friends", Weight: 1.3},
				{Value: "dancing", Label: "Dancing all night", Weight: 1.2},
				{Value: "chill", Label: "Chill and relaxed", Weight: 1.0},
				{Value: "adventure", Label: "Adventure and spontaneity", Weight: 1.1},
			},
		},
		{
			ID:     "after_prom",
			Prompt: "After prom, I'd like to:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "group_activity", Label: "Group activity with friends", Weight: 1.0},
				{Value: "one_on_one", Label: "One-on-one time", Weight: 1.2},
				{Value: "go_home", Label: "Head home or rest", Weight: 1.0},
				{Value: "flexible", Label: "See how the night goes", Weight: 1.1},
			},
		},
		{
			ID:     "date_type",
			Prompt: "I'm looking for a prom date who is:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "romantic_interest", Label: "A romantic interest", Weight: 1.5},
				{Value: "good_friend", Label: "A good friend", Weight: 1.3},
				{Value: "either", Label: "Either works - I'm open", Weight: 1.0},
			},
		},
	},

	CategoryComfortLevels: {
		{
			ID:      "crowd_comfort",
			Prompt:  "How comfortable are you in large crowds?",
			Type:    Slider,
			Min:     1,
			Max:     5,
			Default: 3,
		},
		{
			ID:     "dancing_comfort",
			Prompt: "How do you feel about dancing?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "love_it", Label: "Love it - can't wait!", Weight: 1.0},
				{Value: "enjoy_it", Label: "Enjoy it with friends", Weight: 1.0},
				{Value: "okay", Label: "It's okay, not my favorite", Weight: 0.8},
				{Value: "uncomfortable", Label: "A bit uncomfortable", Weight: 0.6},
			},
		},
		{
			ID:      "photo_comfort",
			Prompt:  "How do you feel about taking photos?",
			Type:    Slider,
			Min:     1,
			Max:     5,
			Default: 3,
		},
	},

	CategoryInterests: {
		{
			ID:     "music_taste",
			Prompt: "What music gets you excited?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "pop", Label: "Pop and Top 40", Weight: 1.0},
				{Value: "hip_hop", Label: "Hip-hop and R&B", Weight: 1.0},
				{Value: "rock", Label: "Rock and Alternative", Weight: 1.0},
				{Value: "country", Label: "Country", Weight: 1.0},
				{Value: "electronic", Label: "Electronic/Dance", Weight: 1.0},
				{Value: "varied", Label: "I like a bit of everything", Weight: 1.0},
			},
		},
		{
			ID:     "weekend_style",
			Prompt: "On weekends, I typically:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "social", Label: "Hang out with friends", Weight: 1.0},
				{Value: "activities", Label: "Do activities (sports, clubs, etc.)", Weight: 1.0},
				{Value: "relax", Label: "Relax at home", Weight: 1.0},
				{Value: "mixed", Label: "Mix of all of the above", Weight: 1.0},
			},
		},
	},

	CategoryCommunication: {
		{
			ID:     "communication_style",
			Prompt: "When planning something, I prefer to:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "text", Label: "Text back and forth", Weight: 1.0},
				{Value: "call", Label: "Quick call to figure it out", Weight: 1.0},
				{Value: "in_person", Label: "Talk in person", Weight: 1.0},
				{Value: "flexible", Label: "Whatever works", Weight: 1.0},
			},
		},
		{
			ID:     "conflict_resolution",
			Prompt: "If there's a misunderstanding, I prefer to:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "talk_it_out", Label: "Talk it out directly", Weight: 1.5},
				{Value: "give_space", Label: "Give space then discuss", Weight: 1.3},
				{Value: "move_on", Label: "Move on and not dwell", Weight: 1.0},
			},
		},
	},

	CategoryDealBreakers: {
		{
			ID:     "smoking",
			Prompt: "How do you feel about smoking/vaping?",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "deal_breaker", Label: "Deal-breaker for me", Weight: -2.0},
				{Value: "uncomfortable", Label: "Makes me uncomfortable", Weight: -1.5},
				{Value: "neutral", Label: "Not my thing but okay", Weight: 0.0},
				{Value: "okay", Label: "It's fine", Weight: 0.0},
			},
		},
		{
			ID:     "substance_attitude",
			Prompt: "My attitude toward substances (alcohol, etc.) is:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "strictly_no", Label: "Strictly no - deal breaker", Weight: -2.0},
				{Value: "uncomfortable", Label: "Makes me uncomfortable", Weight: -1.5},
				{Value: "neutral", Label: "Not my thing but neutral", Weight: 0.0},
				{Value: "okay", Label: "It's fine for others", Weight: 0.0},
			},
		},
	},

	CategoryVibe: {
		{
			ID:      "energy_level",
			Prompt:  "My energy level is typically:",
			Type:    Slider,
			Min:     1,
			Max:     5,
			Default: 3,
		},
		{
			ID:     "emotional_tone",
			Prompt: "I tend to be:",
			Type:   MultipleChoice,
			Options: []Option{
				{Value: "optimistic", Label: "Optimistic and positive", Weight: 1.0},
				{Value: "realistic", Label: "Realistic and balanced", Weight: 1.0},
				{Value: "thoughtful", Label: "Thoughtful and reflective", Weight: 1.0},
				{Value: "playful", Label: "Playful and lighthearted", Weight: 1.0},
			},
		},
	},
}
