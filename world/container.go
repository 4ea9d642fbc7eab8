package world

// Item is a portable thing. Which container holds it is decided by id,
// never by pointer identity.
type Item struct {
	ID          string
	Name        string
	Description string
}

// Stack is one kind of item and how many of it a container holds.
type Stack struct {
	Item   *Item
	Amount int
}

// Container holds counted item stacks in stable insertion order. The
// order is what listings show, so it also fixes the 1-based positions
// MatchToken accepts. A stack with amount <= 0 never exists: removal
// deletes the stack instead of storing zero.
type Container struct {
	stacks []Stack
}

func (c *Container) index(id string) int {
	for i := range c.stacks {
		if c.stacks[i].Item.ID == id {
			return i
		}
	}
	return -1
}

// Add merges amount into the stack for it, appending a new stack if the
// container has none. Amounts <= 0 are ignored.
func (c *Container) Add(it *Item, amount int) {
	if amount <= 0 {
		return
	}
	if i := c.index(it.ID); i >= 0 {
		c.stacks[i].Amount += amount
		return
	}
	c.stacks = append(c.stacks, Stack{Item: it, Amount: amount})
}

// Remove takes up to amount of it out of the container and returns how
// many were actually removed, capped at what is present. An emptied
// stack is deleted.
func (c *Container) Remove(it *Item, amount int) int {
	if amount <= 0 {
		return 0
	}
	i := c.index(it.ID)
	if i < 0 {
		return 0
	}
	removed := amount
	if removed > c.stacks[i].Amount {
		removed = c.stacks[i].Amount
	}
	c.stacks[i].Amount -= removed
	if c.stacks[i].Amount == 0 {
		c.stacks = append(c.stacks[:i], c.stacks[i+1:]...)
	}
	return removed
}

// MoveTo removes up to amount of it from the container and adds the
// actually-removed count to dst. Oversubscribed moves transfer what is
// there; the return value is the transferred count.
func (c *Container) MoveTo(dst *Container, it *Item, amount int) int {
	moved := c.Remove(it, amount)
	dst.Add(it, moved)
	return moved
}

// Amount returns how many of it the container holds, 0 when absent.
func (c *Container) Amount(it *Item) int {
	if i := c.index(it.ID); i >= 0 {
		return c.stacks[i].Amount
	}
	return 0
}

// Stacks returns a copy of the container's stacks in listing order.
func (c *Container) Stacks() []Stack {
	out := make([]Stack, len(c.stacks))
	copy(out, c.stacks)
	return out
}

// Empty reports whether the container holds nothing.
func (c *Container) Empty() bool {
	return len(c.stacks) == 0
}
