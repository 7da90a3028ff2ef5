package regstore

// seedRegulations are the built-in knowledge-base entries, inserted on first
// open and left untouched afterwards so operator edits survive restarts.
var seedRegulations = []Regulation{
	{
		LawID:          "EMPLOYMENT_ACT_MY",
		Jurisdiction:   "MY",
		RegulationType: "Employment",
		Name:           "Employment Act 1955 (Malaysia)",
		Description:    "Principal statute governing employment terms for employees in Peninsular Malaysia, including working hours, leave, termination, and wages.",
		KeyProvisions: []string{
			"Section 12: minimum notice periods for termination",
			"Section 59: one whole rest day per week",
			"Section 60A: maximum 8 working hours per day and 48 per week, overtime at 1.5x",
			"Section 60E: minimum 8 days paid annual leave",
			"Section 60F: minimum 14 days paid sick leave",
		},
		MandatoryProvisions: []string{
			"Termination notice periods",
			"Annual leave entitlement",
			"Sick leave entitlement",
			"Rest day provision",
			"Overtime payment terms",
			"EPF and SOCSO contributions",
		},
		MaxPenalty: "Fines up to RM50,000 per offence and back-payment orders",
	},
	{
		LawID:          "PDPA_MY",
		Jurisdiction:   "MY",
		RegulationType: "Data Protection",
		Name:           "Personal Data Protection Act 2010 (Malaysia)",
		Description:    "Regulates the processing of personal data in commercial transactions in Malaysia through seven data protection principles.",
		KeyProvisions: []string{
			"Section 6: general consent principle",
			"Section 7: notice and choice principle",
			"Section 9: security principle",
			"Section 10: retention principle",
			"Sections 30-31: data access and correction rights",
		},
		MandatoryProvisions: []string{
			"Consent before processing",
			"Purpose notification",
			"Security safeguards",
			"Retention limits",
			"Access and correction rights",
		},
		MaxPenalty: "Fines up to RM500,000 and imprisonment up to 3 years",
	},
	{
		LawID:          "PDPA_SG",
		Jurisdiction:   "SG",
		RegulationType: "Data Protection",
		Name:           "Personal Data Protection Act 2012 (Singapore)",
		Description:    "Governs the collection, use, and disclosure of personal data by organisations in Singapore, enforced by the PDPC.",
		KeyProvisions: []string{
			"Sections 13-17: consent obligation",
			"Section 18: purpose limitation obligation",
			"Section 20: notification obligation",
			"Sections 21-22: access and correction obligation",
			"Section 24: protection obligation",
			"Section 26D: data breach notification obligation",
		},
		MandatoryProvisions: []string{
			"Consent obligation",
			"Purpose limitation",
			"Notification of purposes",
			"Access and correction",
			"Security arrangements",
			"Breach notification",
		},
		MaxPenalty: "Financial penalty up to 10% of annual turnover in Singapore or SGD 1,000,000, whichever is higher",
	},
	{
		LawID:          "GDPR_EU",
		Jurisdiction:   "EU",
		RegulationType: "Data Protection",
		Name:           "General Data Protection Regulation (EU) 2016/679",
		Description:    "European Union regulation on data protection and privacy, applying to all processing of personal data of persons in the EU.",
		KeyProvisions: []string{
			"Article 6: lawfulness of processing",
			"Article 7: conditions for consent",
			"Articles 15-20: data subject rights",
			"Article 25: data protection by design and by default",
			"Articles 33-34: personal data breach notification",
			"Articles 44-46: transfers to third countries",
		},
		MandatoryProvisions: []string{
			"Lawful basis for processing",
			"Valid consent conditions",
			"Data subject rights",
			"Breach notification within 72 hours",
			"Data protection by design",
			"International transfer safeguards",
		},
		MaxPenalty: "Fines up to EUR 20,000,000 or 4% of worldwide annual turnover, whichever is higher",
	},
	{
		LawID:          "CCPA_US",
		Jurisdiction:   "US",
		RegulationType: "Data Protection",
		Name:           "California Consumer Privacy Act of 2018",
		Description:    "California statute granting consumers rights over personal information collected by businesses, with statutory per-violation penalties.",
		KeyProvisions: []string{
			"Section 1798.100: right to know",
			"Section 1798.105: right to delete",
			"Section 1798.120: right to opt out of sale",
			"Section 1798.125: non-discrimination",
		},
		MandatoryProvisions: []string{
			"Right to know disclosures",
			"Opt-out of sale mechanism",
			"Deletion rights",
			"Non-discrimination",
		},
		MaxPenalty: "Civil penalties up to USD 7,500 per intentional violation",
	},
}
