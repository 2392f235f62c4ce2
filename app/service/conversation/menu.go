package conversation

import (
	"github.com/elliotchance/pie/v2"
)

// OptionShareLocation is rendered by the responder as a location-request
// button rather than a plain reply option.
const OptionShareLocation = "Share my location"

const (
	answerYes = "yes"
	answerNo  = "no"
)

const (
	msgGreeting = "Hi! What kind of point of interest are you looking for?\n" +
		"Please, select the appropriate option so that I can give you more accurate information."
	msgInvalidCategory = "It looks like you chose an invalid category. Please, choose one of the available categories."
	msgAnotherCategory = "Is there another category of interest you are looking for?"
	msgSelectAnother   = "OK, select another category."
	msgAllSelected     = "You have selected all the categories."
	msgNeedLocation    = "Now we need your location to provide the closest available assistance for your needs. " +
		"If you see the prompt, please click \"Allow\" or alternatively you can press /skip and manually enter your address."
	msgTypeAddress = "Ok, please type in an address close to yours so I can give you the relevant points of interest, " +
		"otherwise I won't be able to help you."
	msgAddressNotFound = "Sorry, I could not recognise that address. Maybe retype the address?"
	msgNoPoints        = "Sorry, I could not find any points of interest near you. " +
		"Maybe you want to look for another points of interest?"
	msgNearestPoints = "Here are the nearest points of interest:"
	msgSearchAgain   = "Would you like to start a new search?"
	msgFarewell      = "I hope this information will be helpful for you.\nSee you soon!"
	msgDoneInvalid   = "Sorry, I did not understand your answer.\nFor starting a new search, please send /search."
	msgCancelled     = "The current search has been cancelled. Anything else I can do for you?\n\n" +
		"Send /search to start a new search."
	msgNoConversation  = "Send /search to start looking for points of interest near you."
	msgInvalidYesNo    = "Sorry, I did not understand your answer. Please select Yes or No."
	msgAwaitingShare   = "Please share your location using the button below, or send /skip to type an address."
	msgFoundAddressFmt = "You have inputted %s as your address. Looking for points of interest..."
)

const (
	placeholderCategory  = "Category:"
	placeholderChoose    = "Please choose:"
	placeholderNewSearch = "For starting a new search, please click:"
)

// remainingCategories returns the vocabulary entries not selected yet,
// sorted for a stable menu.
func remainingCategories(vocabulary, selected []string) []string {
	remaining := pie.Filter(vocabulary, func(category string) bool {
		return !pie.Contains(selected, category)
	})

	return pie.Sort(remaining)
}

func categoryMenu(options []string) ShowMenu {
	return ShowMenu{
		Options:     options,
		Placeholder: placeholderCategory,
	}
}

func yesNoMenu() ShowMenu {
	return ShowMenu{
		Options:     []string{"Yes", "No"},
		Placeholder: placeholderChoose,
	}
}

func locationMenu() ShowMenu {
	return ShowMenu{
		Options:     []string{OptionShareLocation, "/skip"},
		Placeholder: placeholderChoose,
	}
}

func newSearchMenu() ShowMenu {
	return ShowMenu{
		Options:     []string{"/search"},
		Placeholder: placeholderNewSearch,
	}
}
