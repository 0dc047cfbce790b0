package main

import (
	"chat-fanout/domain/chat"
	"chat-fanout/repositories"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func (a *app) table(header ...string) *tablewriter.Table {
	if a.display.Colours {
		header = lo.Map(header, func(h string, _ int) string {
			return color.New(color.FgGreen, color.OpBold).Render(h)
		})
	}
	table := tablewriter.NewWriter(a.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func (a *app) at(t time.Time) string {
	return t.Local().Format(a.display.TimeFormat)
}

func (a *app) renderConversation(conversation chat.Conversation) {
	table := a.table("ID", "PRIVATE", "PARTICIPANTS", "CREATED")
	table.Append([]string{
		id(conversation.ID),
		strconv.FormatBool(conversation.IsPrivate),
		strings.Join(lo.Map(conversation.Participants, func(p chat.ProfileID, _ int) string { return id(p) }), ","),
		a.at(conversation.CreatedAt),
	})
	table.Render()
}

func (a *app) renderMessage(message chat.Message) {
	table := a.table("ID", "CONVERSATION", "SENDER", "TYPE", "BODY", "ATTACHMENTS")
	table.Append([]string{
		id(message.ID),
		id(message.ConversationID),
		id(message.SenderID),
		string(message.Type),
		message.Body,
		attachments(message),
	})
	table.Render()
}

func (a *app) renderFeed(page chat.Page[chat.FeedItem]) {
	table := a.table("ID", "SENDER", "TYPE", "BODY", "ATTACHMENTS", "SEEN", "SENT")
	for _, item := range page.Items {
		table.Append([]string{
			id(item.Message.ID),
			id(item.Message.SenderID),
			string(item.Message.Type),
			item.Message.Body,
			attachments(item.Message),
			strconv.FormatBool(item.IsSeen),
			a.at(item.Message.CreatedAt),
		})
	}
	table.Render()
	fmt.Fprintf(a.out, "page %d/%d, %d messages\n", page.CurrentPage, page.LastPage, page.Total)
}

func (a *app) renderSummaries(summaries []chat.ConversationSummary) {
	table := a.table("CONVERSATION", "LAST MESSAGE", "FROM", "SEEN", "UNREAD", "SENT")
	for _, summary := range summaries {
		seen := "-"
		if summary.Delivery != nil {
			seen = strconv.FormatBool(summary.Delivery.IsSeen)
		}
		table.Append([]string{
			id(summary.ConversationID),
			summary.LastMessage.Body,
			id(summary.LastMessage.SenderID),
			seen,
			strconv.Itoa(summary.UnreadCount),
			a.at(summary.LastMessage.CreatedAt),
		})
	}
	table.Render()
}

func (a *app) renderKeys(rows []repositories.InspectRow) {
	table := a.table("KEY", "KIND", "DETAIL")
	for _, row := range rows {
		table.Append([]string{row.Key, row.Kind, row.Detail})
	}
	table.Render()
	fmt.Fprintf(a.out, "%d keys\n", len(rows))
}

func attachments(message chat.Message) string {
	return strings.Join(lo.Map(message.Attachments, func(attachment chat.Attachment, _ int) string {
		return attachment.Href
	}), " ")
}

func id[T ~uint64](value T) string {
	return strconv.FormatUint(uint64(value), 10)
}
