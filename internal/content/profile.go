package content

type Mission struct {
	Title       string
	Description string
}

type Company struct {
	Name        string
	Role        string
	Period      string
	Location    string
	Team        string
	Description string
	Missions    []Mission
}

type Education struct {
	Title  string
	School string
	Period string
	Points []string
}

// Bio is the short identity card at the top of the profile page.
type Bio struct {
	Name       string
	Background string
	Motive     string
	Focus      string
	Goal       string
}

type Skills struct {
	Languages []string
	Tools     []string
}

// SpokenLanguage pairs a language with its CEFR level.
type SpokenLanguage struct {
	Name  string
	Level string
}

const (
	TimelineWork   = "work"
	TimelineSchool = "school"
)

// TimelineEntry is one dated step of the work/school path, newest first.
type TimelineEntry struct {
	Date        string
	Kind        string
	Title       string
	Org         string
	Description string
}

func (e TimelineEntry) IsWork() bool { return e.Kind == TimelineWork }

type Profile struct {
	Name           string
	Headline       string
	About          string
	Career         []Company
	Cursus         []Education
	Bio            Bio
	Skills         Skills
	Certifications []string
	Spoken         []SpokenLanguage
	Timeline       []TimelineEntry
	Hobbies        []string
}

var DefaultProfile = Profile{
	Name:     "Portfolio BTS SIO",
	Headline: "Technicien systèmes et réseaux, option SISR",
	About: `Étudiant en BTS SIO option SISR, je construis et j'entretiens des infrastructures
	réseau et système. Ce portfolio rassemble mon parcours, mes réalisations et une veille
	technologique sur la cybersécurité : MFA, ZTNA et SIEM.`,

	Career: []Company{
		{
			Name:     "SUEZ R&V",
			Role:     "Technicien Système et Réseau — Équipe Architecture",
			Period:   "Sept 2024 — Aujourd'hui",
			Location: "Île-de-France",
			Team:     "Équipe Architecture",
			Description: `Intégré à l'équipe Architecture du Département Technique, j'interviens sur le design,
			le déploiement et le maintien des infrastructures réseau et système de l'entreprise.`,
			Missions: []Mission{
				{"Architecture Réseau & Switchs", "Design et déploiement de nouvelles architectures réseau, configuration de switchs managés avec VLANs, spanning-tree et sécurisation des ports."},
				{"Firewall & VPN", "Configuration et maintien de règles firewall, tunnels VPN site-to-site et client-to-site."},
				{"Supervision & Monitoring", "Déploiement de solutions de monitoring réseau (SNMP, syslog) pour les équipements critiques."},
				{"Support N2/N3", "Prise en charge des incidents réseau escaladés, analyse des logs et diagnostic."},
			},
		},
		{
			Name:        "Vivalto Santé / CHPE",
			Role:        "Technicien Support IT",
			Period:      "Sept 2023 — Sept 2024",
			Location:    "Île-de-France",
			Team:        "Service Informatique",
			Description: `Support utilisateur, gestion du parc informatique et pilotage de la migration Windows 11.`,
			Missions: []Mission{
				{"Migration Windows 11", "Inventaire du parc, planification par service, masterisation et déploiement."},
				{"Gestion du Parc IT", "Administration du parc via GLPI et OCS Inventory."},
				{"Onboarding & Offboarding", "Création de comptes AD, messagerie, attribution et récupération du matériel."},
			},
		},
	},

	Cursus: []Education{
		{
			Title:  "BTS SIO — option SISR",
			School: "Ensitech",
			Period: "2023 — 2025",
			Points: []string{
				"Administration des systèmes et des réseaux",
				"Cybersécurité et protection des données",
				"Maintenance et supervision des infrastructures",
				"Solutions de virtualisation et de cloud",
			},
		},
		{
			Title:  "Bachelor 1 & 2",
			School: "Ensitech",
			Period: "2025 — 2027",
			Points: []string{
				"Architecture des systèmes d'information",
				"Sécurité des réseaux d'entreprise",
			},
		},
	},
	Bio: Bio{
		Name:       "Thaïs PARISOT",
		Background: "Littérature",
		Motive:     "Reconversion vers l'informatique par curiosité et goût du challenge",
		Focus:      "Cybersécurité",
		Goal:       "Sécuriser les infrastructures OIV",
	},

	Skills: Skills{
		Languages: []string{"Python", "JavaScript", "HTML/CSS", "Bash", "SQL", "PowerShell", "PHP"},
		Tools:     []string{"Linux", "Wireshark", "Metasploit", "Windows", "Docker", "Git", "VMware"},
	},

	Certifications: []string{
		"CompTIA Security+",
		"Cisco CCNA 1",
		"EBios Risk",
		"FM: Sécurité des Réseaux",
		"Cisco: Intro Cybersécurité",
		"Cisco: Basiques Matériel",
		"CNIL: RGPD",
		"SecNum: Intro Cybersécurité",
	},

	Spoken: []SpokenLanguage{
		{"Anglais", "C1"},
		{"Espagnol", "B2"},
		{"Japonais", "A2"},
	},

	Timeline: []TimelineEntry{
		{"09.2025", TimelineWork, "Technicienne Informatique (Équipe Architecture) — Alternance", "SUEZ R&V",
			"Valorisation des produits IT, automatisation, référencements, analyse et structuration de données"},
		{"09.2024 → 2026", TimelineSchool, "BTS SIO — SISR", "ENSUP CAMPUS SQY (ENSITECH)",
			"Spécialisation systèmes/réseaux et cybersécurité"},
		{"09.2024 → 08.2025", TimelineWork, "Technicienne Support Informatique — Alternance", "Clinique Privée de l'Europe, Le Port-Marly",
			"Gestion et maintenance des infrastructures réseau, support N1 & N2"},
		{"02.2024 → 05.2024", TimelineWork, "Technicienne Support Informatique — Stage", "Clinique Privée de l'Europe, Le Port-Marly",
			"Maintenance des infrastructures réseau, support N1 & N2 (7 semaines)"},
		{"09.2023 → 06.2024", TimelineSchool, "BTS SIO SISR 1", "H3 Campus, Poissy",
			"Première année de BTS SIO, spécialisation SISR"},
		{"2022 → 2023", TimelineSchool, "Licence Sociologie", "Université Nanterre",
			"Option anthropologie & ethnologie"},
		{"2021 → 2022", TimelineSchool, "Licence Humanités", "Institut Catholique de Paris",
			"Sociologie, anthropologie, théologie, philosophie, histoire, grec ancien"},
		{"2017 → 2020", TimelineSchool, "Baccalauréat Général — Littérature", "Candidate libre",
			"Obtenu en septembre 2020, mention AB. Spécialités : droits & grands enjeux du monde contemporain, littérature anglaise"},
	},

	Hobbies: []string{"Escalade", "Lecture", "Jeux vidéo", "Musculation", "Échecs", "Astronomie"},
}
