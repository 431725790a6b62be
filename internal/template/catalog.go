package template

import "broadcast-srv/internal/model"

// Entry is one canned title/message pair for an emergency type.
type Entry struct {
	Type    model.EmergencyType `json:"type"`
	Title   string              `json:"title"`
	Message string              `json:"message"`
}

// catalog holds one canned template per emergency type. Messages may carry
// {{placeholders}} filled in by Customize.
var catalog = map[model.EmergencyType]Entry{
	model.EmergencyActiveThreat: {
		Type:    model.EmergencyActiveThreat,
		Title:   "EMERGENCY: Active Threat",
		Message: "There is an active threat at {{school}}. All students and staff are following emergency procedures. Do NOT come to the school. Updates will follow.",
	},
	model.EmergencyMedical: {
		Type:    model.EmergencyMedical,
		Title:   "Medical Emergency",
		Message: "A medical emergency is being handled at {{school}}. Emergency services are on site. Affected families will be contacted directly.",
	},
	model.EmergencyFire: {
		Type:    model.EmergencyFire,
		Title:   "Fire Emergency",
		Message: "A fire alarm has been activated at {{school}}. All students and staff have evacuated to the designated assembly areas. Emergency services are responding.",
	},
	model.EmergencyNaturalDisaster: {
		Type:    model.EmergencyNaturalDisaster,
		Title:   "Natural Disaster Alert",
		Message: "Due to {{event}}, emergency procedures are in effect at {{school}}. Students are sheltered and safe. Do not attempt to pick up students until further notice.",
	},
	model.EmergencyLockdown: {
		Type:    model.EmergencyLockdown,
		Title:   "School Lockdown",
		Message: "{{school}} is under lockdown as a precaution. All students and staff are secured indoors. Do not come to the school. We will update you shortly.",
	},
	model.EmergencyEvacuation: {
		Type:    model.EmergencyEvacuation,
		Title:   "School Evacuation",
		Message: "{{school}} is being evacuated. Students are being moved to {{location}}. Pick-up instructions will follow.",
	},
	model.EmergencyShelterInPlace: {
		Type:    model.EmergencyShelterInPlace,
		Title:   "Shelter in Place",
		Message: "Students and staff at {{school}} are sheltering in place due to {{reason}}. Everyone is safe indoors. Normal activities will resume when the all-clear is given.",
	},
	model.EmergencyWeatherAlert: {
		Type:    model.EmergencyWeatherAlert,
		Title:   "Weather Alert",
		Message: "Due to {{condition}}, please be advised of schedule changes at {{school}}. Check the school website for the latest information.",
	},
	model.EmergencyTransportation: {
		Type:    model.EmergencyTransportation,
		Title:   "Transportation Notice",
		Message: "Bus route {{route}} is affected today: {{details}}. We apologize for the inconvenience.",
	},
	model.EmergencyFacilityIssue: {
		Type:    model.EmergencyFacilityIssue,
		Title:   "Facility Notice",
		Message: "A facility issue at {{school}} ({{details}}) may affect normal operations. We will keep you informed.",
	},
	model.EmergencyEarlyDismissal: {
		Type:    model.EmergencyEarlyDismissal,
		Title:   "Early Dismissal",
		Message: "{{school}} will dismiss students early today at {{time}}. Please arrange pick-up accordingly.",
	},
	model.EmergencySchoolClosure: {
		Type:    model.EmergencySchoolClosure,
		Title:   "School Closure",
		Message: "{{school}} will be closed on {{date}} due to {{reason}}. All activities are cancelled.",
	},
	model.EmergencyGeneralAnnouncement: {
		Type:    model.EmergencyGeneralAnnouncement,
		Title:   "School Announcement",
		Message: "{{message}}",
	},
}

// Get returns the canned template for an emergency type, falling back to
// the general announcement template for unmapped types.
func Get(t model.EmergencyType) Entry {
	if e, ok := catalog[t]; ok {
		return e
	}
	return catalog[model.EmergencyGeneralAnnouncement]
}

// List returns the full catalog in enum order.
func List() []Entry {
	entries := make([]Entry, 0, len(catalog))
	for _, t := range model.EmergencyTypes {
		if e, ok := catalog[t]; ok {
			entries = append(entries, e)
		}
	}
	return entries
}
