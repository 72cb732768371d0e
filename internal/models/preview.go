package models

// PreviewContent is shown before the first generation so the editor and
// the export actions have something to work on.
func PreviewContent() CarouselContent {
	return CarouselContent{
		FirstPageTitle: "Как снизить кортизол без врачей: 3 способа",
		ContentPages: []ContentPage{
			{
				Title:          "1. Никаких новостей",
				IntroParagraph: "Инфошум убивает нервную систему.",
				Points: []string{
					"УДАЛИ новостные паблики",
					"Выключи уведомления после 20:00",
				},
				BlockquoteText: "Твое внимание — это твоя жизнь.",
			},
			{
				Title:          "2. Прогулка без телефона",
				IntroParagraph: "Мозг должен отдыхать от дофамина.",
				Points: []string{
					"30 минут в день",
					"Смотри на горизонт, а не в экран",
				},
				BlockquoteText: "Природа лечит лучше таблеток.",
			},
			{
				Title:          "3. Режим сна",
				IntroParagraph: "Сон до 23:00 снижает стресс вдвое.",
				Points: []string{
					"Температура 19-20 градусов",
					"Полная темнота (блэкаут)",
				},
				BlockquoteText: "Кто рано встает — тот не стрессует.",
			},
		},
		CallToActionPage: CallToActionPage{
			Title:       "!! Напиши \"СТРЕСС\" в комменты",
			Description: "и я вышлю чек-лист здорового сна в Директ.",
		},
	}
}
