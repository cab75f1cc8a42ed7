package model

// TheFellowship returns the nine walkers who set out from Rivendell.
func TheFellowship() Fellowship {
	return Fellowship{
		NewCharacter("Aragorn", 87, Man),
		NewCharacter("Frodo", 50, Hobbit),
		NewCharacter("Legolas", 2931, Elf),
		NewCharacter("Boromir", 40, Man),
		NewCharacter("Sam", 38, Hobbit),
		NewCharacter("Pippin", 28, Hobbit),
		NewCharacter("Merry", 36, Hobbit),
		NewCharacter("Gandalf", 2019, Maia),
		NewCharacter("Gimli", 139, Dwarf),
	}
}

// Sauron is a Maia, like Gandalf, but never a member.
func Sauron() Character { return NewCharacter("Sauron", 8000, Maia) }
