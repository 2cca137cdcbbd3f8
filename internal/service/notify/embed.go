package notify

import (
	"fmt"
	"strings"
	"time"

	"wifiric-backend/internal/discord"
)

const (
	logoURL     = "https://i.ibb.co/4nXx45XS/Logo.png"
	footerText  = "WifiRic • Système de Commandes"
	embedFrame  = "╔═════════════════════════╗"
	embedFrame2 = "╚═════════════════════════╝"
	// Zero-width space; Discord rejects empty field values.
	blank = "​"
)

type siteTypeInfo struct {
	Label string
	Icon  string
}

var siteTypes = map[string]siteTypeInfo{
	"vitrine":   {Label: "Site Vitrine", Icon: "🏪"},
	"ecommerce": {Label: "E-commerce", Icon: "🛒"},
	"dashboard": {Label: "Dashboard", Icon: "📊"},
	"portfolio": {Label: "Portfolio", Icon: "🎨"},
	"landing":   {Label: "Landing Page", Icon: "🚀"},
	"community": {Label: "Site Communautaire", Icon: "👥"},
	"webapp":    {Label: "Application Web", Icon: "💻"},
	"other":     {Label: "Autre", Icon: "✨"},
}

func siteTypeDisplay(siteType, siteTypeOther string) siteTypeInfo {
	if siteType == "other" && siteTypeOther != "" {
		return siteTypeInfo{Label: siteTypeOther, Icon: "✨"}
	}
	if info, ok := siteTypes[siteType]; ok {
		return info
	}
	return siteTypes["other"]
}

func orderEmbed(req OrderRequest, discordUsername string) discord.Embed {
	site := siteTypeDisplay(req.SiteType, req.SiteTypeOther)
	now := time.Now()

	title := req.SiteName
	if title == "" {
		title = "Nouveau Projet Web"
	}

	fields := []discord.EmbedField{
		{Name: embedFrame, Value: blank},
		{Name: "🏷️ Référence Commande", Value: codeBlock("#" + req.OrderRef), Inline: true},
		{Name: site.Icon + " Type de Site", Value: codeBlock(site.Label), Inline: true},
		{Name: "🌐 Nom du Site", Value: codeBlock(orDefault(req.SiteName, "Non spécifié")), Inline: true},
		{Name: "👤 Informations Client", Value: fmt.Sprintf(">>> **Nom:** %s\n**Email:** %s\n**Discord:** %s", req.FullName, req.Email, discordUsername)},
	}

	if colors := colorsDisplay(req.PrimaryColor, req.SecondaryColor, req.OtherColors); colors != "" {
		fields = append(fields, discord.EmbedField{Name: "🎨 Palette de Couleurs", Value: colors, Inline: true})
	}
	fields = append(fields,
		discord.EmbedField{Name: "💰 Budget", Value: budgetDisplay(req.Budget, req.BudgetText), Inline: true},
		discord.EmbedField{Name: "🖼️ Fichiers Joints", Value: logosDisplay(req.LogoURLs), Inline: true},
	)
	if req.SpecificInstructions != "" {
		fields = append(fields, discord.EmbedField{Name: "📌 Instructions Spécifiques", Value: codeBlock(truncate(req.SpecificInstructions, 500))})
	}
	if req.Description != "" {
		fields = append(fields, discord.EmbedField{Name: "📖 Description du Projet", Value: codeBlock(truncate(req.Description, 500))})
	}
	fields = append(fields,
		discord.EmbedField{Name: "🕐 Reçue le", Value: receivedAt(now)},
		discord.EmbedField{Name: embedFrame2, Value: blank},
	)

	return discord.Embed{
		Author:      &discord.EmbedAuthor{Name: "🆕 NOUVELLE COMMANDE REÇUE", IconURL: logoURL},
		Title:       site.Icon + " " + title,
		Color:       0x3B82F6,
		Description: "> Une nouvelle commande de site web a été soumise.\n> **Analyse et devis à préparer.**",
		Fields:      fields,
		Thumbnail:   &discord.EmbedThumbnail{URL: logoURL},
		Footer:      &discord.EmbedFooter{Text: footerText, IconURL: logoURL},
		Timestamp:   discord.Timestamp(now),
	}
}

type projectTypeInfo struct {
	Label string
	Icon  string
}

var projectTypes = map[string]projectTypeInfo{
	"website":     {Label: "Site Internet", Icon: "🌐"},
	"discord-bot": {Label: "Bot Discord", Icon: "🤖"},
	"both":        {Label: "Site + Bot Discord", Icon: "✨"},
	"other":       {Label: "Autre Projet", Icon: "💡"},
}

func contactEmbed(req ContactRequest, contactRef, discordUsername string) discord.Embed {
	project, ok := projectTypes[req.ProjectType]
	if !ok {
		project = projectTypes["other"]
	}
	now := time.Now()

	return discord.Embed{
		Author:      &discord.EmbedAuthor{Name: "📨 NOUVEAU MESSAGE DE CONTACT", IconURL: logoURL},
		Title:       project.Icon + " " + req.Subject,
		Color:       0x10B981,
		Description: "> Un nouveau message de contact a été reçu.\n> **Réponse attendue sous 48h.**",
		Fields: []discord.EmbedField{
			{Name: embedFrame, Value: blank},
			{Name: "🏷️ Référence", Value: codeBlock("#" + contactRef), Inline: true},
			{Name: project.Icon + " Type de Projet", Value: codeBlock(project.Label), Inline: true},
			{Name: blank, Value: blank, Inline: true},
			{Name: "👤 Informations Client", Value: fmt.Sprintf(">>> **Nom:** %s\n**Email:** %s\n**Discord:** %s", req.Name, req.Email, discordUsername)},
			{Name: "📝 Message", Value: codeBlock(truncate(req.Message, 900))},
			{Name: "🕐 Reçu le", Value: receivedAt(now)},
			{Name: embedFrame2, Value: blank},
		},
		Thumbnail: &discord.EmbedThumbnail{URL: logoURL},
		Footer:    &discord.EmbedFooter{Text: footerText, IconURL: logoURL},
		Timestamp: discord.Timestamp(now),
	}
}

func deletionEmbed(req DeletionRequest) discord.Embed {
	label := "Élément"
	switch req.Type {
	case "contact":
		label = "Message de contact"
	case "order":
		label = "Commande"
	}

	fields := []discord.EmbedField{
		{Name: "🏷️ Référence", Value: codeBlock("#" + req.ItemID), Inline: true},
	}
	if req.ChannelName != "" {
		fields = append(fields, discord.EmbedField{Name: "📁 Salon d'origine", Value: codeBlock(req.ChannelName), Inline: true})
	}
	now := time.Now()
	fields = append(fields, discord.EmbedField{Name: "🕐 Supprimé le", Value: receivedAt(now)})

	return discord.Embed{
		Author:      &discord.EmbedAuthor{Name: "🗑️ SUPPRESSION", IconURL: logoURL},
		Title:       label + " supprimé",
		Color:       0xEF4444,
		Description: "> Un élément a été supprimé par un administrateur.",
		Fields:      fields,
		Footer:      &discord.EmbedFooter{Text: footerText, IconURL: logoURL},
		Timestamp:   discord.Timestamp(now),
	}
}

func colorsDisplay(primary, secondary string, others []string) string {
	var b strings.Builder
	if primary != "" {
		fmt.Fprintf(&b, "🔵 Primaire: `%s`\n", primary)
	}
	if secondary != "" {
		fmt.Fprintf(&b, "🟣 Secondaire: `%s`\n", secondary)
	}
	if len(others) > 0 {
		quoted := make([]string, 0, len(others))
		for _, c := range others {
			quoted = append(quoted, "`"+c+"`")
		}
		b.WriteString("🎨 Autres: " + strings.Join(quoted, " "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func budgetDisplay(budget *float64, budgetText string) string {
	if budget != nil {
		out := fmt.Sprintf("**%g€**", *budget)
		if budgetText != "" {
			out += "\n_" + budgetText + "_"
		}
		return out
	}
	if budgetText != "" {
		return budgetText
	}
	return "Non spécifié"
}

func logosDisplay(urls []string) string {
	links := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		links = append(links, fmt.Sprintf("[📎 Fichier %d](%s)", len(links)+1, u))
	}
	if len(links) == 0 {
		return "Aucun fichier"
	}
	return strings.Join(links, "\n")
}

func receivedAt(t time.Time) string {
	return fmt.Sprintf("**%s** à **%s**", t.Format("Monday 2 January 2006"), t.Format("15:04"))
}

func codeBlock(s string) string {
	return "```" + s + "```"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
