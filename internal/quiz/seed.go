package quiz

import (
	"fmt"
	"sort"
)

// builtin holds the shipped quiz content for the six baseline modules.
// External JSON files loaded with LoadFile override these per module.
var builtin = map[string]*Quiz{
	"phishing": {
		ModuleID: "phishing",
		Phases: []Phase{
			{
				Name: "Spotting the hook",
				Questions: []Question{
					{
						Prompt:       "You receive an email saying your bank account will be closed unless you click a link right now. What should you do?",
						Options:      []string{"Click the link quickly", "Delete or report it and contact the bank directly", "Reply with your account number"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "Which of these is a common sign of a phishing message?",
						Options:      []string{"A personalized greeting from a known contact", "Urgent threats and requests for credentials", "A message with no links at all"},
						CorrectIndex: 1,
					},
				},
			},
			{
				Name: "Checking the sender",
				Questions: []Question{
					{
						Prompt:       "An email claims to be from 'soporte@banco-seguro-login.xyz'. What does the address suggest?",
						Options:      []string{"It is the bank's official domain", "It is likely a spoofed domain", "Addresses never matter"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "Before clicking a link, the safest habit is to:",
						Options:      []string{"Hover to preview the real destination", "Trust the blue color of the link", "Forward it to friends first"},
						CorrectIndex: 0,
					},
				},
			},
		},
	},
	"safe-passwords": {
		ModuleID: "safe-passwords",
		Phases: []Phase{
			{
				Name: "Building strong passwords",
				Questions: []Question{
					{
						Prompt:       "Which password is strongest?",
						Options:      []string{"123456", "maria2024", "T!ger-mesa-9-Lluvia"},
						CorrectIndex: 2,
					},
					{
						Prompt:       "How often should you reuse the same password across sites?",
						Options:      []string{"Always, it's easier to remember", "Never", "Only for banking sites"},
						CorrectIndex: 1,
					},
				},
			},
			{
				Name: "Keeping them safe",
				Questions: []Question{
					{
						Prompt:       "Where is the best place to keep your passwords?",
						Options:      []string{"A sticky note on the monitor", "A password manager", "A shared family notebook"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "A website offers two-factor authentication. You should:",
						Options:      []string{"Enable it", "Ignore it, passwords are enough", "Disable it to log in faster"},
						CorrectIndex: 0,
					},
				},
			},
		},
	},
	"privacy": {
		ModuleID: "privacy",
		Phases: []Phase{
			{
				Name: "What to share",
				Questions: []Question{
					{
						Prompt:       "A quiz app asks for your home address and ID number to show results. You should:",
						Options:      []string{"Provide them, apps need data", "Decline; the request is excessive for the purpose", "Provide a neighbor's address"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "Which of these is personal data worth protecting?",
						Options:      []string{"Your national ID number", "The weather forecast", "A public bus schedule"},
						CorrectIndex: 0,
					},
				},
			},
			{
				Name: "App permissions",
				Questions: []Question{
					{
						Prompt:       "A flashlight app requests access to your contacts. This is:",
						Options:      []string{"Normal and required", "A red flag worth denying", "A legal obligation"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "Reviewing app permissions on your phone should happen:",
						Options:      []string{"Never", "Periodically", "Only after an account is stolen"},
						CorrectIndex: 1,
					},
				},
			},
		},
	},
	"social-media": {
		ModuleID: "social-media",
		Phases: []Phase{
			{
				Name: "Thinking before posting",
				Questions: []Question{
					{
						Prompt:       "Before sharing a surprising news story, you should:",
						Options:      []string{"Share it immediately", "Check the source and date first", "Add your own headline"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "Posting that your house will be empty during vacation:",
						Options:      []string{"Is harmless fun", "Can invite burglary and should be avoided", "Helps your neighbors"},
						CorrectIndex: 1,
					},
				},
			},
			{
				Name: "Dealing with strangers",
				Questions: []Question{
					{
						Prompt:       "A stranger online asks to meet you alone. The safe response is:",
						Options:      []string{"Agree if they seem friendly", "Decline and tell someone you trust", "Share your location with them"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "If someone harasses you on a platform, you should:",
						Options:      []string{"Reply with insults", "Block and report the account", "Delete your own account"},
						CorrectIndex: 1,
					},
				},
			},
		},
	},
	"responsible-ai": {
		ModuleID: "responsible-ai",
		Phases: []Phase{
			{
				Name: "Understanding AI answers",
				Questions: []Question{
					{
						Prompt:       "An AI chatbot gives you a medical diagnosis. You should:",
						Options:      []string{"Follow it without question", "Treat it as a starting point and consult a professional", "Share it as verified fact"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "AI-generated text can:",
						Options:      []string{"Never be wrong", "Contain convincing but false statements", "Only repeat its training data verbatim"},
						CorrectIndex: 1,
					},
				},
			},
			{
				Name: "Using AI tools well",
				Questions: []Question{
					{
						Prompt:       "Pasting your company's confidential report into a public AI tool is:",
						Options:      []string{"Fine, tools are private", "A data leak risk", "Required for good answers"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "When you use AI to help write schoolwork, the honest approach is to:",
						Options:      []string{"Present it all as your own", "Follow your institution's rules and disclose the help", "Deny using any tools"},
						CorrectIndex: 1,
					},
				},
			},
		},
	},
	"digital-wellbeing": {
		ModuleID: "digital-wellbeing",
		Phases: []Phase{
			{
				Name: "Healthy habits",
				Questions: []Question{
					{
						Prompt:       "You notice you check your phone every few minutes without reason. A good first step is:",
						Options:      []string{"Buy a second phone", "Set app time limits or notification-free hours", "Sleep with the phone under the pillow"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "Which activity belongs in a balanced digital routine?",
						Options:      []string{"Screens during every meal", "Regular offline breaks", "Scrolling until sunrise"},
						CorrectIndex: 1,
					},
				},
			},
			{
				Name: "Screens and sleep",
				Questions: []Question{
					{
						Prompt:       "Using bright screens right before bed tends to:",
						Options:      []string{"Improve sleep quality", "Delay and disrupt sleep", "Have no effect"},
						CorrectIndex: 1,
					},
					{
						Prompt:       "A healthy rule for night-time phone use is:",
						Options:      []string{"Keep notifications loud", "Stop screen use some time before sleeping", "Answer every message instantly"},
						CorrectIndex: 1,
					},
				},
			},
		},
	},
}

// Builtin returns the shipped quiz for a baseline module, or an error for
// an unknown module id.
func Builtin(moduleID string) (*Quiz, error) {
	q, ok := builtin[moduleID]
	if !ok {
		return nil, fmt.Errorf("no built-in quiz for module %q", moduleID)
	}
	return q, nil
}

// Modules lists the module ids with built-in quizzes, sorted.
func Modules() []string {
	ids := make([]string, 0, len(builtin))
	for id := range builtin {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
