package mines

// tick advances every timed entity by one second. Entities are independent,
// so only the countdown beep flag is shared between them.
func tick(state GameState, deps Dependencies) Transition {
	if state.Phase != Running {
		return unchanged(state)
	}

	next := state.Clone()
	next.ElapsedSeconds++
	beep := false

	if p := next.ActivePower; p != nil {
		switch p.Kind {
		case PowerXray, PowerSuperhero:
			if p.SecondsRemaining <= 1 {
				next.ActivePower = nil
			} else {
				previous := p.SecondsRemaining
				p.SecondsRemaining--
				beep = beep || finalCountdown(previous, p.SecondsRemaining)
			}
		}
	}

	if o := next.FunnyBoomOverlay; o != nil {
		switch o.Phase.Kind {
		case FunnyBoomBriefing:
			if o.Phase.SecondsRemaining <= 1 {
				o.Phase = FunnyBoomPhase{Kind: FunnyBoomActive, SecondsRemaining: FunnyBoomPlayDuration}
			} else {
				o.Phase.SecondsRemaining--
			}
		case FunnyBoomActive:
			if o.Phase.SecondsRemaining <= 1 {
				next.FunnyBoomOverlay = nil
			} else {
				previous := o.Phase.SecondsRemaining
				o.Phase.SecondsRemaining--
				beep = beep || finalCountdown(previous, o.Phase.SecondsRemaining)
			}
		}
	}

	if n := next.SpecialModeNotice; n != nil {
		n.SecondsRemaining--
		if n.SecondsRemaining <= 0 {
			activatePreparedSpecialMode(&next, n.Style, deps)
		}
	}

	for c, pulse := range next.TileScorePulses {
		pulse.SecondsRemaining--
		if pulse.SecondsRemaining <= 0 {
			delete(next.TileScorePulses, c)
		} else {
			next.TileScorePulses[c] = pulse
		}
	}

	var events []Event
	if beep {
		events = append(events, PlaySound{SoundCountdownBeep})
	}
	return Transition{State: next, Events: events}
}

func finalCountdown(previous, current int) bool {
	return current < previous && current <= 3 && current > 0
}
